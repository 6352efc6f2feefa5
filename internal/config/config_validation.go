// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Server-side requirements (non-empty DSN, token sign key) are checked by the
// server constructor, not here, so the client can share the same loader.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.RefreshInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.StalenessWindow == 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
