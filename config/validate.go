package config

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// ParseAddress decodes a 20-byte hex address with optional 0x prefix.
func ParseAddress(s string) ([20]byte, error) {
	var out [20]byte
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "0x")
	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return out, fmt.Errorf("config: invalid address %q: %w", s, err)
	}
	if len(raw) != 20 {
		return out, fmt.Errorf("config: invalid address %q: want 20 bytes, got %d", s, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

// ParseAmount decodes a non-negative decimal amount.
func ParseAmount(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	value, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, fmt.Errorf("config: invalid amount %q", s)
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("config: negative amount %q", s)
	}
	return value, nil
}

// Validate checks the configuration for values the node cannot start with.
func (c *Config) Validate() error {
	if c.Genesis.Governance.QuorumPct > 100 {
		return fmt.Errorf("config: quorum %d%% exceeds 100%%", c.Genesis.Governance.QuorumPct)
	}
	if c.Genesis.Governance.ExecutionDelay < 0 {
		return fmt.Errorf("config: negative execution delay %d", c.Genesis.Governance.ExecutionDelay)
	}
	if c.Genesis.Market.RoyaltyBps > 10_000 {
		return fmt.Errorf("config: royalty %d bps exceeds 10000", c.Genesis.Market.RoyaltyBps)
	}
	if c.Genesis.Staking.EarlyPenaltyBps > 10_000 {
		return fmt.Errorf("config: early penalty %d bps exceeds 10000", c.Genesis.Staking.EarlyPenaltyBps)
	}
	token := c.Genesis.Token
	if strings.TrimSpace(token.Name) == "" || strings.TrimSpace(token.Symbol) == "" {
		return fmt.Errorf("config: token name and symbol are required")
	}
	supply, err := ParseAmount(token.TotalSupply)
	if err != nil {
		return err
	}
	if supply.Sign() <= 0 {
		return fmt.Errorf("config: total supply must be positive")
	}
	for _, addr := range []string{token.Mint, token.Authority, token.Treasury, c.Genesis.Staking.Vault} {
		if _, err := ParseAddress(addr); err != nil {
			return err
		}
	}
	if _, err := ParseAmount(c.Genesis.Governance.MinTokensForProposal); err != nil {
		return err
	}
	return nil
}

// LogLevelValue maps the configured level onto the set understood by the
// logging setup, defaulting unknown values to info.
func (c *Config) LogLevelValue() string {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "error":
		return strings.ToLower(strings.TrimSpace(c.LogLevel))
	default:
		return "info"
	}
}
