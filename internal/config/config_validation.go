// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// applyDefaults fills in sane defaults for optional durations and depths
// that no configuration source provided. Called after merging, before
// validation.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.AccessTokenDuration == 0 {
		cfg.App.AccessTokenDuration = 15 * time.Minute
	}
	if cfg.App.RefreshTokenDuration == 0 {
		cfg.App.RefreshTokenDuration = 30 * 24 * time.Hour
	}
	if cfg.App.ResetTokenDuration == 0 {
		cfg.App.ResetTokenDuration = time.Hour
	}
	if cfg.App.PasswordHistoryDepth == 0 {
		cfg.App.PasswordHistoryDepth = 3
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Mailer.RequestTimeout == 0 {
		cfg.Mailer.RequestTimeout = 10 * time.Second
	}
	if cfg.Workers.TokenRetentionAge == 0 {
		cfg.Workers.TokenRetentionAge = 30 * 24 * time.Hour
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
