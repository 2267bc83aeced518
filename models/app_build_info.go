// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo carries immutable build-time metadata embedded into binaries.
//
// Values are injected by linker flags during CI/CD and exposed by the
// /api/version endpoint and the startup banner.
type AppBuildInfo struct {
	Version     string `json:"version"`
	BuildDate   string `json:"buildDate"`
	BuildCommit string `json:"buildCommit"`
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
// Empty values are reported as "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		Version:     orNotAvailable(buildVersion),
		BuildDate:   orNotAvailable(buildDate),
		BuildCommit: orNotAvailable(buildCommit),
	}
}

// NotAvailable marks build metadata that was not injected.
const NotAvailable = "N/A"

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
