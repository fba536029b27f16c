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
	"bytes"
	"encoding/json"
	"fmt"
)

// Signable is implemented by anything that can produce the serialized
// payload segment of a canonical string. The returned string is what
// goes on the wire.
type Signable interface {
	SignablePayload() (string, error)
}

// RawPayload is an already serialized body, used as is.
type RawPayload string

// SignablePayload implements Signable.
func (p RawPayload) SignablePayload() (string, error) {
	return string(p), nil
}

// JSONPayload wraps a value that is serialized with JSON on demand.
type JSONPayload struct {
	Value any
}

// SignablePayload implements Signable.
func (p JSONPayload) SignablePayload() (string, error) {
	return MarshalJSON(p.Value)
}

// MarshalJSON serializes v the way request bodies are sent: no HTML
// escaping and no trailing newline. Struct fields keep declaration
// order and map keys are sorted, so equal values give equal bytes.
func MarshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to serialize payload: %w", err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
