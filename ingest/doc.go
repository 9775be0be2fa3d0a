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


// Package ingest provides the document ingestion pipeline for recall.
//
// Documents are split into overlapping chunks, written to storage where they
// become immediately searchable lexically, and embedded asynchronously on a
// worker pool so vector search catches up shortly after. Embedding failures
// are logged and retried on the next ingestion of the same content; they do
// not fail the ingest call.
package ingest
