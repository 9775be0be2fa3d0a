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


// Package rank fuses independently ranked candidate lists and curates the
// fused set.
//
// Fusion uses weighted Reciprocal Rank Fusion (RRF): each chunk scores
// weight * 1/(k+rank) per list it appears in, so heterogeneous raw scores
// never need normalizing against each other and agreement between methods
// is rewarded with the summed contribution. Curation then applies a score
// threshold, exact-match and term-overlap boosts, and derives a clamped
// confidence estimate for the final set.
//
// Both stages are pure computations over in-memory data: no I/O, no
// blocking, no retries.
package rank
