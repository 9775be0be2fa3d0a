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


// Package query classifies incoming queries and derives rank-fusion weights
// from them.
//
// Classification is an ordered, total function: quoted substrings mark an
// exact-term query, a trailing question mark a conceptual one, a short token
// count a keyword query, and everything else falls through to the balanced
// default. Each class carries a pair of multiplicative fusion weights tuned
// for that query shape.
package query
