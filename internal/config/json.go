// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		TokenSignKey         string   `json:"token_sign_key"`
		TokenIssuer          string   `json:"token_issuer"`
		AccessTokenDuration  Duration `json:"access_token_duration"`
		RefreshTokenDuration Duration `json:"refresh_token_duration"`
		ResetTokenDuration   Duration `json:"reset_token_duration"`
		PasswordHistoryDepth int      `json:"password_history_depth"`
		Version              string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Mailer struct {
		RelayURL       string   `json:"relay_url"`
		APIKey         string   `json:"api_key"`
		FromAddress    string   `json:"from_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"mailer,omitempty"`

	Workers struct {
		TokenRetentionInterval Duration `json:"token_retention_interval"`
		TokenRetentionAge      Duration `json:"token_retention_age"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:         jsonCfg.App.TokenSignKey,
			TokenIssuer:          jsonCfg.App.TokenIssuer,
			AccessTokenDuration:  time.Duration(jsonCfg.App.AccessTokenDuration),
			RefreshTokenDuration: time.Duration(jsonCfg.App.RefreshTokenDuration),
			ResetTokenDuration:   time.Duration(jsonCfg.App.ResetTokenDuration),
			PasswordHistoryDepth: jsonCfg.App.PasswordHistoryDepth,
			Version:              jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Mailer: Mailer{
			RelayURL:       jsonCfg.Mailer.RelayURL,
			APIKey:         jsonCfg.Mailer.APIKey,
			FromAddress:    jsonCfg.Mailer.FromAddress,
			RequestTimeout: time.Duration(jsonCfg.Mailer.RequestTimeout),
		},
		Workers: Workers{
			TokenRetentionInterval: time.Duration(jsonCfg.Workers.TokenRetentionInterval),
			TokenRetentionAge:      time.Duration(jsonCfg.Workers.TokenRetentionAge),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
