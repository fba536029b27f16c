// Copyright (C) 2025 SAGE-X Project
//
// This file is part of alipay-global-go.
//
// alipay-global-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// alipay-global-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with alipay-global-go.  If not, see <https://www.gnu.org/licenses/>.

package canonical

import (
	"strings"
	"time"
)

// Version identifies the layout produced by Build. It is bumped whenever
// the byte layout of the signed string changes.
const Version = "1"

// Method is the HTTP method placed at the head of the canonical string.
type Method string

const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// String returns the method token as it appears on the wire.
func (m Method) String() string {
	return string(m)
}

// SigningContext holds the routing and identity fields of one message.
// It is plain data with no behavior beyond Build.
type SigningContext struct {
	// Method is the HTTP method, uppercase.
	Method Method

	// Path is the request path without scheme, host or query,
	// e.g. "/ams/api/v1/payments/pay".
	Path string

	// ClientID is the merchant identifier issued by Alipay.
	ClientID string

	// Timestamp is the pre-formatted RFC 3339 string sent alongside the
	// signature. See FormatTimestamp.
	Timestamp string
}

// NewSigningContext creates a SigningContext with the timestamp formatted
// from t.
func NewSigningContext(method Method, path, clientID string, t time.Time) SigningContext {
	return SigningContext{
		Method:    method,
		Path:      path,
		ClientID:  clientID,
		Timestamp: FormatTimestamp(t),
	}
}

// Build returns the canonical string for sc and payload. It is a pure
// function of its inputs.
func Build(sc SigningContext, payload string) string {
	var b strings.Builder
	b.Grow(len(sc.Method) + len(sc.Path) + len(sc.ClientID) + len(sc.Timestamp) + len(payload) + 4)

	b.WriteString(string(sc.Method))
	b.WriteByte(' ')
	b.WriteString(sc.Path)
	b.WriteByte('\n')
	b.WriteString(sc.ClientID)
	b.WriteByte('.')
	b.WriteString(sc.Timestamp)
	b.WriteByte('.')
	b.WriteString(payload)

	return b.String()
}

// FormatTimestamp renders t as RFC 3339 in UTC with whole seconds,
// e.g. "2024-01-01T00:00:00Z".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

// ParseTimestamp parses a timestamp received in a Request-Time or
// Response-Time header. Any RFC 3339 offset is accepted.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(s))
}
