package token

import "math/big"

// Bounds on the descriptive metadata captured at initialization.
const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
)

// TransferFeeBps is the protocol transfer fee, fixed at initialization.
const TransferFeeBps = 10 // 0.1%

// TokenInfo is the durable record describing the managed token: supply bounds,
// issuance accounting, and fee policy. There is exactly one record per mint.
type TokenInfo struct {
	Name              string   `json:"name"`
	Symbol            string   `json:"symbol"`
	Decimals          uint8    `json:"decimals"`
	TotalSupply       *big.Int `json:"totalSupply"`
	CirculatingSupply *big.Int `json:"circulatingSupply"`
	Mint              [20]byte `json:"mint"`
	Authority         [20]byte `json:"authority"`
	Treasury          [20]byte `json:"treasury"`
	FeeBps            uint32   `json:"feeBps"`
}

// Clone returns a deep copy so stored records cannot be aliased by callers.
func (t *TokenInfo) Clone() *TokenInfo {
	if t == nil {
		return nil
	}
	clone := *t
	if t.TotalSupply != nil {
		clone.TotalSupply = new(big.Int).Set(t.TotalSupply)
	}
	if t.CirculatingSupply != nil {
		clone.CirculatingSupply = new(big.Int).Set(t.CirculatingSupply)
	}
	return &clone
}
