// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is what cmd/client runs: a blocking application loop that returns
// only when the user quits or startup fails.
type Client interface {
	Run() error
}
