package ledger

import (
	"errors"
	"math/big"

	"iamaichain/core/types"
)

var (
	// ErrInsufficientFunds is returned when a debit exceeds the source balance.
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
	// ErrUnauthorized is returned when the supplied authority may not move the
	// debited balance.
	ErrUnauthorized = errors.New("ledger: unauthorized")
	// ErrUnknownMint is returned when an issuance primitive names a mint the
	// ledger does not manage.
	ErrUnknownMint = errors.New("ledger: unknown mint")
	// ErrInvalidAmount is returned for nil or negative amounts.
	ErrInvalidAmount = errors.New("ledger: invalid amount")

	errStateNotConfigured = errors.New("ledger: state not configured")
)

// Ledger is the value-transfer capability consumed by the engines. Transfers
// are atomic and authorized by the debited account's owner; issuance is
// authorized by the mint authority. Engines depend on this interface, never on
// the concrete store, so tests can substitute an in-memory ledger.
type Ledger interface {
	Transfer(from, to, authority [20]byte, amount *big.Int) error
	MintTo(mint, to, authority [20]byte, amount *big.Int) error
	BurnFrom(mint, from, authority [20]byte, amount *big.Int) error
	BalanceOf(addr [20]byte) (*big.Int, error)
}

// View is the read-only slice of the capability used for voting-weight
// queries.
type View interface {
	BalanceOf(addr [20]byte) (*big.Int, error)
}

type accountState interface {
	GetAccount(addr []byte) (*types.Account, error)
	PutAccount(addr []byte, account *types.Account) error
}

// AccountLedger implements the capability over the keyed account store.
// Ownership is positional: every account is owned by its own address, and a
// transfer must be authorized by that address. Program-owned vaults stay
// program-owned because only the owning engine ever supplies the vault address
// as authority.
type AccountLedger struct {
	state         accountState
	mint          [20]byte
	mintAuthority [20]byte
}

// NewAccountLedger constructs a ledger bound to the mint it manages.
func NewAccountLedger(mint, mintAuthority [20]byte) *AccountLedger {
	return &AccountLedger{mint: mint, mintAuthority: mintAuthority}
}

// SetState wires the ledger to the account store.
func (l *AccountLedger) SetState(state accountState) { l.state = state }

func validAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (l *AccountLedger) loadAccount(addr [20]byte) (*types.Account, error) {
	account, err := l.state.GetAccount(addr[:])
	if err != nil {
		return nil, err
	}
	return account.EnsureDefaults(), nil
}

// Transfer debits from and credits to in one atomic step. A zero amount is a
// validated no-op.
func (l *AccountLedger) Transfer(from, to, authority [20]byte, amount *big.Int) error {
	if l == nil || l.state == nil {
		return errStateNotConfigured
	}
	if err := validAmount(amount); err != nil {
		return err
	}
	if authority != from {
		return ErrUnauthorized
	}
	source, err := l.loadAccount(from)
	if err != nil {
		return err
	}
	if source.Balance.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	if amount.Sign() == 0 || from == to {
		return nil
	}
	dest, err := l.loadAccount(to)
	if err != nil {
		return err
	}
	source.Balance = new(big.Int).Sub(source.Balance, amount)
	dest.Balance = new(big.Int).Add(dest.Balance, amount)
	if err := l.state.PutAccount(from[:], source); err != nil {
		return err
	}
	return l.state.PutAccount(to[:], dest)
}

// MintTo credits freshly issued tokens to the destination account.
func (l *AccountLedger) MintTo(mint, to, authority [20]byte, amount *big.Int) error {
	if l == nil || l.state == nil {
		return errStateNotConfigured
	}
	if err := validAmount(amount); err != nil {
		return err
	}
	if mint != l.mint {
		return ErrUnknownMint
	}
	if authority != l.mintAuthority {
		return ErrUnauthorized
	}
	if amount.Sign() == 0 {
		return nil
	}
	dest, err := l.loadAccount(to)
	if err != nil {
		return err
	}
	dest.Balance = new(big.Int).Add(dest.Balance, amount)
	return l.state.PutAccount(to[:], dest)
}

// BurnFrom destroys tokens held by the source account.
func (l *AccountLedger) BurnFrom(mint, from, authority [20]byte, amount *big.Int) error {
	if l == nil || l.state == nil {
		return errStateNotConfigured
	}
	if err := validAmount(amount); err != nil {
		return err
	}
	if mint != l.mint {
		return ErrUnknownMint
	}
	if authority != from && authority != l.mintAuthority {
		return ErrUnauthorized
	}
	source, err := l.loadAccount(from)
	if err != nil {
		return err
	}
	if source.Balance.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	if amount.Sign() == 0 {
		return nil
	}
	source.Balance = new(big.Int).Sub(source.Balance, amount)
	return l.state.PutAccount(from[:], source)
}

// BalanceOf reports the current balance without mutating state.
func (l *AccountLedger) BalanceOf(addr [20]byte) (*big.Int, error) {
	if l == nil || l.state == nil {
		return nil, errStateNotConfigured
	}
	account, err := l.loadAccount(addr)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(account.Balance), nil
}
