package state

import (
	"math/big"

	"iamaichain/native/token"
)

// TokenGet loads the token record for a mint.
func (m *Manager) TokenGet(mint [20]byte) (*token.TokenInfo, bool, error) {
	info := new(token.TokenInfo)
	ok, err := m.getRecord(hashKey(tokenInfoPrefix, mint[:]), info)
	if err != nil || !ok {
		return nil, false, err
	}
	return info, true, nil
}

// TokenPut stores the token record under its mint.
func (m *Manager) TokenPut(info *token.TokenInfo) error {
	if info == nil {
		return nil
	}
	return m.putRecord(hashKey(tokenInfoPrefix, info.Mint[:]), info)
}

// TotalSupply reports the authorized total supply of the mint, the figure
// governance quorum is measured against. Unknown mints read as zero so quorum
// checks against an uninitialised token fail closed.
func (m *Manager) TotalSupply(mint [20]byte) (*big.Int, error) {
	info, ok, err := m.TokenGet(mint)
	if err != nil {
		return nil, err
	}
	if !ok || info.TotalSupply == nil {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(info.TotalSupply), nil
}
