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


// Package embedding memoizes text-to-vector lookups in front of an external
// embedding provider.
//
// Keys are normalized (trimmed, case-folded) so trivially different queries
// share a cache line. The cache is capacity-bounded with least-recently-used
// eviction and safe for concurrent use across sessions; concurrent misses
// for the same key collapse into a single provider call.
package embedding
