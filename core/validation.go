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

import (
	"fmt"
	"strings"
)

// ValidateQueryText validates an incoming query according to domain rules.
//
// Validation rules:
//   - Text must not be empty (or whitespace only)
//   - Text must not exceed maxLen runes (maxLen <= 0 disables the check)
//
// Validation happens before any external call so a malformed query never
// reaches a search or embedding provider.
func ValidateQueryText(text string, maxLen int) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrEmptyQuery)
	}

	if maxLen > 0 && len([]rune(text)) > maxLen {
		return fmt.Errorf("%w: %w (%d > %d)", ErrInvalidQuery, ErrQueryTooLong, len([]rune(text)), maxLen)
	}

	return nil
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//
// NOT validated:
//   - Vector (can be empty until the ingestion pipeline embeds it)
//   - Metadata (opaque to the core)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	return nil
}

// ValidateCandidates checks that a single-method candidate list holds the
// strict rank-order invariant: ranks are 1-based with no duplicate rank and
// no duplicate chunk ID.
func ValidateCandidates(candidates []*Candidate) error {
	seenIds := make(map[ID]bool, len(candidates))
	seenRanks := make(map[int]bool, len(candidates))

	for _, c := range candidates {
		if c == nil {
			return fmt.Errorf("%w: nil candidate", ErrInvalidCandidateList)
		}
		if c.Rank < 1 {
			return fmt.Errorf("%w: rank %d for chunk %d is not 1-based", ErrInvalidCandidateList, c.Rank, c.ChunkId)
		}
		if seenIds[c.ChunkId] {
			return fmt.Errorf("%w: duplicate chunk %d", ErrInvalidCandidateList, c.ChunkId)
		}
		if seenRanks[c.Rank] {
			return fmt.Errorf("%w: duplicate rank %d", ErrInvalidCandidateList, c.Rank)
		}
		seenIds[c.ChunkId] = true
		seenRanks[c.Rank] = true
	}

	return nil
}
