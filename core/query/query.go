/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package query

import (
	"net/url"

	"github.com/google/safehtml"
)

// DefaultMode is used when the URL carries no mode parameter
const DefaultMode = "evaluate"

// Query represents the parsed state of a playground URL
type Query struct {
	// Base path (e.g., "/")
	Path string

	Mode       string // Pipeline mode; validated by the caller
	Source     string // Program text
	ShowTokens bool   // Whether the token table is expanded
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	q := u.Query()

	state := &Query{
		Path:       u.Path,
		Mode:       q.Get("mode"),
		Source:     q.Get("source"),
		ShowTokens: q.Get("tokens") == "1",
	}
	if state.Mode == "" {
		state.Mode = DefaultMode
	}
	if state.Path == "" {
		state.Path = "/"
	}
	return state
}

// Clone creates a copy of the Query
func (s *Query) Clone() *Query {
	clone := *s
	return &clone
}

// IsMode reports whether mode is the current mode
func (s *Query) IsMode(mode string) bool {
	return s.Mode == mode
}

// WithMode returns a URL for the same source run in another mode
func (s *Query) WithMode(mode string) safehtml.URL {
	newState := s.Clone()
	newState.Mode = mode
	return newState.ToSafeURL()
}

// WithSource returns a URL with the source replaced, keeping the mode
func (s *Query) WithSource(source string) safehtml.URL {
	newState := s.Clone()
	newState.Source = source
	return newState.ToSafeURL()
}

// WithTokensToggled returns a URL with the token table toggled
func (s *Query) WithTokensToggled() safehtml.URL {
	newState := s.Clone()
	newState.ShowTokens = !s.ShowTokens
	return newState.ToSafeURL()
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()
	q.Set("mode", s.Mode)
	if s.Source != "" {
		q.Set("source", s.Source)
	}
	if s.ShowTokens {
		q.Set("tokens", "1")
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	// URLSanitized sanitizes the input string and returns a URL
	return safehtml.URLSanitized(s.ToURL())
}
