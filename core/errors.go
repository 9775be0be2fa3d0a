// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain errors
var (
	// ErrInvalidQuery indicates a malformed query, rejected before any
	// external call is made.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrEmptyQuery indicates the query text is empty.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrQueryTooLong indicates the query text exceeds the configured maximum length.
	ErrQueryTooLong = errors.New("query exceeds maximum length")

	// ErrEmptyCandidateSet indicates both search methods returned nothing.
	ErrEmptyCandidateSet = errors.New("empty candidate set")

	// ErrInvalidCandidateList indicates a candidate list violates strict rank
	// order (duplicate chunk ID or duplicate rank).
	ErrInvalidCandidateList = errors.New("invalid candidate list")

	// ErrEmbeddingProvider indicates the external embedding provider failed.
	ErrEmbeddingProvider = errors.New("embedding provider failure")

	// ErrSearchProvider indicates an external search provider failed.
	ErrSearchProvider = errors.New("search provider failure")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")
)
