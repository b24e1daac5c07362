package ledger

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"iamaichain/core/types"
)

type memAccountState struct {
	accounts map[string]*types.Account
}

func newMemAccountState() *memAccountState {
	return &memAccountState{accounts: make(map[string]*types.Account)}
}

func (s *memAccountState) GetAccount(addr []byte) (*types.Account, error) {
	account, ok := s.accounts[hex.EncodeToString(addr)]
	if !ok {
		return (&types.Account{}).EnsureDefaults(), nil
	}
	return account.Clone(), nil
}

func (s *memAccountState) PutAccount(addr []byte, account *types.Account) error {
	s.accounts[hex.EncodeToString(addr)] = account.Clone()
	return nil
}

func addr(last byte) [20]byte {
	var out [20]byte
	out[19] = last
	return out
}

var (
	mint      = addr(0x01)
	authority = addr(0x02)
	alice     = addr(0x03)
	bob       = addr(0x04)
)

func newTestLedger(t *testing.T) (*AccountLedger, *memAccountState) {
	t.Helper()
	state := newMemAccountState()
	bank := NewAccountLedger(mint, authority)
	bank.SetState(state)
	return bank, state
}

func balance(t *testing.T, bank *AccountLedger, who [20]byte) int64 {
	t.Helper()
	got, err := bank.BalanceOf(who)
	if err != nil {
		t.Fatalf("balance of %x: %v", who, err)
	}
	return got.Int64()
}

func TestMintToRequiresMintAuthority(t *testing.T) {
	bank, _ := newTestLedger(t)
	if err := bank.MintTo(mint, alice, alice, big.NewInt(100)); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := bank.MintTo(mint, alice, authority, big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if got := balance(t, bank, alice); got != 100 {
		t.Fatalf("alice balance %d, want 100", got)
	}
}

func TestMintToRejectsUnknownMint(t *testing.T) {
	bank, _ := newTestLedger(t)
	if err := bank.MintTo(addr(0x99), alice, authority, big.NewInt(100)); !errors.Is(err, ErrUnknownMint) {
		t.Fatalf("expected ErrUnknownMint, got %v", err)
	}
}

func TestTransferMovesFundsAtomically(t *testing.T) {
	bank, _ := newTestLedger(t)
	if err := bank.MintTo(mint, alice, authority, big.NewInt(1_000)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := bank.Transfer(alice, bob, alice, big.NewInt(400)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if got := balance(t, bank, alice); got != 600 {
		t.Fatalf("alice balance %d, want 600", got)
	}
	if got := balance(t, bank, bob); got != 400 {
		t.Fatalf("bob balance %d, want 400", got)
	}
}

func TestTransferRequiresOwnerAuthority(t *testing.T) {
	bank, _ := newTestLedger(t)
	if err := bank.MintTo(mint, alice, authority, big.NewInt(1_000)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := bank.Transfer(alice, bob, bob, big.NewInt(400)); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if got := balance(t, bank, alice); got != 1_000 {
		t.Fatalf("alice balance %d after rejected transfer, want 1000", got)
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	bank, _ := newTestLedger(t)
	if err := bank.MintTo(mint, alice, authority, big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := bank.Transfer(alice, bob, alice, big.NewInt(101)); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := balance(t, bank, bob); got != 0 {
		t.Fatalf("bob credited %d on failed transfer", got)
	}
}

func TestTransferZeroIsValidatedNoop(t *testing.T) {
	bank, state := newTestLedger(t)
	if err := bank.Transfer(alice, bob, alice, big.NewInt(0)); err != nil {
		t.Fatalf("zero transfer: %v", err)
	}
	if len(state.accounts) != 0 {
		t.Fatalf("zero transfer wrote %d accounts", len(state.accounts))
	}
	if err := bank.Transfer(alice, bob, alice, nil); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for nil amount, got %v", err)
	}
}

func TestTransferSelfIsNoop(t *testing.T) {
	bank, _ := newTestLedger(t)
	if err := bank.MintTo(mint, alice, authority, big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := bank.Transfer(alice, alice, alice, big.NewInt(50)); err != nil {
		t.Fatalf("self transfer: %v", err)
	}
	if got := balance(t, bank, alice); got != 100 {
		t.Fatalf("alice balance %d after self transfer, want 100", got)
	}
}

func TestBurnFromAllowsHolderOrMintAuthority(t *testing.T) {
	bank, _ := newTestLedger(t)
	if err := bank.MintTo(mint, alice, authority, big.NewInt(1_000)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := bank.BurnFrom(mint, alice, alice, big.NewInt(100)); err != nil {
		t.Fatalf("holder burn: %v", err)
	}
	if err := bank.BurnFrom(mint, alice, authority, big.NewInt(100)); err != nil {
		t.Fatalf("authority burn: %v", err)
	}
	if err := bank.BurnFrom(mint, alice, bob, big.NewInt(100)); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for third party, got %v", err)
	}
	if got := balance(t, bank, alice); got != 800 {
		t.Fatalf("alice balance %d, want 800", got)
	}
}

func TestBurnFromInsufficientFunds(t *testing.T) {
	bank, _ := newTestLedger(t)
	if err := bank.BurnFrom(mint, alice, alice, big.NewInt(1)); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}
