package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout accepted by
// the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string   `json:"token_sign_key"`
		TokenIssuer  string   `json:"token_issuer"`
		HashKey      string   `json:"hash_key"`
		SubmitDelay  Duration `json:"submit_delay"`
	} `json:"app,omitempty"`

	Ledger struct {
		CheckingOpeningBalance string `json:"checking_opening_balance"`
		SavingsOpeningBalance  string `json:"savings_opening_balance"`
	} `json:"ledger,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		KeyPrefix string `json:"key_prefix"`
	} `json:"storage,omitempty"`

	Workers struct {
		TokenCleanupInterval Duration `json:"token_cleanup_interval"`
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
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			HashKey:      jsonCfg.App.HashKey,
			SubmitDelay:  time.Duration(jsonCfg.App.SubmitDelay),
		},
		Ledger: Ledger{
			CheckingOpeningBalance: jsonCfg.Ledger.CheckingOpeningBalance,
			SavingsOpeningBalance:  jsonCfg.Ledger.SavingsOpeningBalance,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			KeyPrefix: jsonCfg.Storage.KeyPrefix,
		},
		Workers: Workers{
			TokenCleanupInterval: time.Duration(jsonCfg.Workers.TokenCleanupInterval),
		},
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
