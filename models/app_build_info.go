// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo holds the version metadata stamped into a binary at link time.
// The server reports it on its version endpoint and the TUI shows it on the
// about screen, so an operator can always tell which build answered.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo wraps the raw ldflags values. Empty strings are kept as-is;
// "N/A" placeholders are the presentation layer's concern.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
	}
}

// BuildVersion returns the stamped version string.
func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

// BuildDate returns the stamped build date.
func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

// BuildCommit returns the stamped VCS commit.
func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}
