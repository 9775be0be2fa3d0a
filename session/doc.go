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


// Package session tracks conversational context across turns.
//
// The Tracker keeps a bounded window of prior resolved queries for one
// session and rewrites referential queries ("and what about...") into
// self-contained ones before they reach the query analyzer. A Tracker is
// owned by exactly one session and is mutated sequentially within it;
// concurrent sessions each get their own Tracker.
package session
