package token

import (
	"math/big"
	"strings"

	"iamaichain/core/events"
	"iamaichain/core/ledger"
	"iamaichain/native/common"
)

type engineState interface {
	TokenGet(mint [20]byte) (*TokenInfo, bool, error)
	TokenPut(info *TokenInfo) error
}

// Engine enforces the supply cap and fee policy for the managed token. Balance
// movement itself is delegated to the ledger capability; the engine owns the
// TokenInfo record and its invariants.
type Engine struct {
	state   engineState
	ledger  ledger.Ledger
	emitter events.Emitter
	pauses  common.PauseView
}

// NewEngine constructs a token engine with default no-op dependencies.
func NewEngine() *Engine {
	return &Engine{emitter: events.NoopEmitter{}}
}

// SetState wires the engine to the state backend providing persistence helpers.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetLedger configures the value-transfer capability used for issuance and
// fee-bearing transfers.
func (e *Engine) SetLedger(l ledger.Ledger) { e.ledger = l }

// SetEmitter configures the event emitter. Passing nil resets it to a no-op.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetPauses wires the module pause switchboard.
func (e *Engine) SetPauses(p common.PauseView) { e.pauses = p }

func (e *Engine) emit(evt events.Event) {
	if e == nil || e.emitter == nil || evt == nil {
		return
	}
	e.emitter.Emit(evt)
}

func (e *Engine) ready() error {
	if e == nil || e.state == nil {
		return errStateNotConfigured
	}
	if e.ledger == nil {
		return errLedgerNotConfigured
	}
	return common.Guard(e.pauses, common.ModuleToken)
}

func (e *Engine) loadInfo(mint [20]byte) (*TokenInfo, error) {
	info, ok, err := e.state.TokenGet(mint)
	if err != nil {
		return nil, err
	}
	if !ok || info == nil {
		return nil, ErrNotInitialized
	}
	return info, nil
}

// Initialize creates the TokenInfo record for the mint with zero circulating
// supply and the fixed protocol transfer fee. It fails when the mint has
// already been initialized.
func (e *Engine) Initialize(mint, authority, treasury [20]byte, name, symbol string, decimals uint8, totalSupply *big.Int) (*TokenInfo, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	symbol = strings.TrimSpace(symbol)
	if name == "" || len(name) > MaxNameLength || symbol == "" || len(symbol) > MaxSymbolLength {
		return nil, ErrInvalidMetadata
	}
	if totalSupply == nil || totalSupply.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, ok, err := e.state.TokenGet(mint); err != nil {
		return nil, err
	} else if ok {
		return nil, ErrAlreadyInitialized
	}
	info := &TokenInfo{
		Name:              name,
		Symbol:            symbol,
		Decimals:          decimals,
		TotalSupply:       new(big.Int).Set(totalSupply),
		CirculatingSupply: big.NewInt(0),
		Mint:              mint,
		Authority:         authority,
		Treasury:          treasury,
		FeeBps:            TransferFeeBps,
	}
	if err := e.state.TokenPut(info); err != nil {
		return nil, err
	}
	e.emit(initializedEvent(info))
	return info.Clone(), nil
}

// Mint issues amount to the destination account and increments circulating
// supply. Only the token authority may mint. A zero amount is a validated
// no-op.
func (e *Engine) Mint(mint, caller, to [20]byte, amount *big.Int) error {
	if err := e.ready(); err != nil {
		return err
	}
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	info, err := e.loadInfo(mint)
	if err != nil {
		return err
	}
	if caller != info.Authority {
		return ErrUnauthorized
	}
	if amount.Sign() == 0 {
		return nil
	}
	updated := new(big.Int).Add(info.CirculatingSupply, amount)
	if updated.Cmp(info.TotalSupply) > 0 {
		return ErrExceedsMaxSupply
	}
	if err := e.ledger.MintTo(mint, to, info.Authority, amount); err != nil {
		return err
	}
	info.CirculatingSupply = updated
	if err := e.state.TokenPut(info); err != nil {
		return err
	}
	e.emit(mintedEvent(info, to, amount))
	return nil
}

// TransferWithFee moves amount from the sender to the recipient, routing the
// protocol fee to the treasury first. fee + sent always equals amount exactly.
func (e *Engine) TransferWithFee(mint, from, to [20]byte, amount *big.Int) (fee, sent *big.Int, err error) {
	if err := e.ready(); err != nil {
		return nil, nil, err
	}
	if amount == nil || amount.Sign() < 0 {
		return nil, nil, ErrInvalidAmount
	}
	info, err := e.loadInfo(mint)
	if err != nil {
		return nil, nil, err
	}
	fee = feeFor(amount, info.FeeBps)
	sent = new(big.Int).Sub(amount, fee)

	// Surface InsufficientFunds before any balance moves so a failed request
	// leaves no partial effect.
	balance, err := e.ledger.BalanceOf(from)
	if err != nil {
		return nil, nil, err
	}
	if balance.Cmp(amount) < 0 {
		return nil, nil, ledger.ErrInsufficientFunds
	}
	if fee.Sign() > 0 {
		if err := e.ledger.Transfer(from, info.Treasury, from, fee); err != nil {
			return nil, nil, err
		}
	}
	if err := e.ledger.Transfer(from, to, from, sent); err != nil {
		return nil, nil, err
	}
	e.emit(transferEvent(info, from, to, amount, fee))
	return fee, sent, nil
}

// Burn destroys amount held by from and decrements circulating supply. The
// holder or the token authority may burn.
func (e *Engine) Burn(mint, caller, from [20]byte, amount *big.Int) error {
	if err := e.ready(); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	info, err := e.loadInfo(mint)
	if err != nil {
		return err
	}
	if caller != from && caller != info.Authority {
		return ErrUnauthorized
	}
	if info.CirculatingSupply.Cmp(amount) < 0 {
		return ErrCirculationUnderflow
	}
	if err := e.ledger.BurnFrom(mint, from, caller, amount); err != nil {
		return err
	}
	info.CirculatingSupply = new(big.Int).Sub(info.CirculatingSupply, amount)
	if err := e.state.TokenPut(info); err != nil {
		return err
	}
	e.emit(burnedEvent(info, from, amount))
	return nil
}

// Info returns the TokenInfo record without mutating state.
func (e *Engine) Info(mint [20]byte) (*TokenInfo, error) {
	if e == nil || e.state == nil {
		return nil, errStateNotConfigured
	}
	info, err := e.loadInfo(mint)
	if err != nil {
		return nil, err
	}
	return info.Clone(), nil
}

// feeFor computes floor(amount * bps / 10000). big.Int keeps the intermediate
// product exact for any amount.
func feeFor(amount *big.Int, bps uint32) *big.Int {
	fee := new(big.Int).Mul(amount, big.NewInt(int64(bps)))
	return fee.Div(fee, big.NewInt(10_000))
}
