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

// Package alipayglobal provides version information for alipay-global-go and
// the AMS protocol revisions it speaks.
package alipayglobal

import "github.com/sage-x-project/alipay-global-go/pkg/canonical"

const (
	// Version is the current version of alipay-global-go
	Version = "0.3.0"

	// AMSAPIVersion is the Alipay Global (AMS) API path version used by the client
	AMSAPIVersion = "v1"

	// CanonicalFormVersion identifies the layout of the string that gets signed
	CanonicalFormVersion = canonical.Version

	// DefaultAlgorithm is the signature algorithm placed in outgoing headers
	DefaultAlgorithm = "RSA256"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	LibraryVersion       string `json:"libraryVersion"`
	AMSAPIVersion        string `json:"amsApiVersion"`
	CanonicalFormVersion string `json:"canonicalFormVersion"`
	DefaultAlgorithm     string `json:"defaultAlgorithm"`
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		LibraryVersion:       Version,
		AMSAPIVersion:        AMSAPIVersion,
		CanonicalFormVersion: CanonicalFormVersion,
		DefaultAlgorithm:     DefaultAlgorithm,
	}
}
