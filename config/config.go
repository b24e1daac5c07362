package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the node configuration loaded from TOML. Genesis holds the
// economic parameters applied once when the data directory is empty.
type Config struct {
	DataDir        string  `toml:"DataDir"`
	NetworkName    string  `toml:"NetworkName"`
	MetricsAddress string  `toml:"MetricsAddress"`
	LogLevel       string  `toml:"LogLevel"`
	LogFormat      string  `toml:"LogFormat"`
	Genesis        Genesis `toml:"genesis"`
}

// Genesis declares the token and module parameters minted into a fresh
// ledger. Addresses are 20-byte hex strings, amounts are decimal strings so
// supplies beyond 64 bits survive the round trip.
type Genesis struct {
	Token      TokenGenesis      `toml:"token"`
	Governance GovernanceGenesis `toml:"governance"`
	Market     MarketGenesis     `toml:"market"`
	Staking    StakingGenesis    `toml:"staking"`
}

type TokenGenesis struct {
	Name        string `toml:"Name"`
	Symbol      string `toml:"Symbol"`
	Decimals    uint8  `toml:"Decimals"`
	TotalSupply string `toml:"TotalSupply"`
	Mint        string `toml:"Mint"`
	Authority   string `toml:"Authority"`
	Treasury    string `toml:"Treasury"`
}

type GovernanceGenesis struct {
	MinTokensForProposal string `toml:"MinTokensForProposal"`
	QuorumPct            uint8  `toml:"QuorumPct"`
	ExecutionDelay       int64  `toml:"ExecutionDelay"`
}

type MarketGenesis struct {
	RoyaltyBps uint32 `toml:"RoyaltyBps"`
}

type StakingGenesis struct {
	Vault           string `toml:"Vault"`
	EarlyPenaltyBps uint32 `toml:"EarlyPenaltyBps"`
}

// Load reads the configuration at path, creating a default file first when
// none exists.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	cfg.applyDefaults(path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults(path string) {
	if c.DataDir == "" {
		c.DataDir = filepath.Join(filepath.Dir(path), "data")
	}
	if c.NetworkName == "" {
		c.NetworkName = "iamai-local"
	}
	if c.MetricsAddress == "" {
		c.MetricsAddress = ":9464"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
}

func defaultConfig(path string) *Config {
	cfg := &Config{
		Genesis: Genesis{
			Token: TokenGenesis{
				Name:        "IAMAI Token",
				Symbol:      "IAMAI",
				Decimals:    9,
				TotalSupply: "1000000000000000000",
				Mint:        "0x0000000000000000000000000000000000000001",
				Authority:   "0x0000000000000000000000000000000000000002",
				Treasury:    "0x0000000000000000000000000000000000000003",
			},
			Governance: GovernanceGenesis{
				MinTokensForProposal: "1000000000000",
				QuorumPct:            10,
				ExecutionDelay:       172_800,
			},
			Market: MarketGenesis{
				RoyaltyBps: 500,
			},
			Staking: StakingGenesis{
				Vault:           "0x0000000000000000000000000000000000000004",
				EarlyPenaltyBps: 1_000,
			},
		},
	}
	cfg.applyDefaults(path)
	return cfg
}

// createDefault writes a default configuration file and returns it.
func createDefault(path string) (*Config, error) {
	cfg := defaultConfig(path)
	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func persist(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create dir %s: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer file.Close()
	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}
