package staking

import (
	"math"
	"math/big"
	"strings"
	"time"

	"iamaichain/core/events"
	"iamaichain/core/ledger"
	"iamaichain/native/common"
)

type engineState interface {
	StakingPoolGet() (*StakingPool, bool, error)
	StakingPoolPut(p *StakingPool) error
	TierGet(id uint8) (*StakingTier, bool, error)
	TierPut(t *StakingTier) error
	StakeGet(owner [20]byte) (*UserStake, bool, error)
	StakePut(s *UserStake) error
}

// UnstakeReceipt reports the funds moved when a position closes.
type UnstakeReceipt struct {
	Principal *big.Int
	Rewards   *big.Int
	Penalty   *big.Int
	Early     bool
}

// Engine manages the staking pool, its tiers, and user positions. Principal
// and the reward reserve live in the pool vault; the vault address doubles
// as the disbursement authority so only this engine can move funds out.
type Engine struct {
	state   engineState
	ledger  ledger.Ledger
	emitter events.Emitter
	pauses  common.PauseView
	nowFn   func() int64
}

// NewEngine constructs a staking engine with default no-op dependencies.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		nowFn:   func() int64 { return time.Now().Unix() },
	}
}

// SetState wires the engine to the state backend providing persistence helpers.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetLedger configures the value-transfer capability for stakes and payouts.
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

// SetNowFunc overrides the time source for deterministic testing.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

func (e *Engine) emit(evt events.Event) {
	if e == nil || e.emitter == nil || evt == nil {
		return
	}
	e.emitter.Emit(evt)
}

func (e *Engine) now() int64 {
	if e == nil || e.nowFn == nil {
		return time.Now().Unix()
	}
	return e.nowFn()
}

func (e *Engine) ready() error {
	if e == nil || e.state == nil {
		return errStateNotConfigured
	}
	return common.Guard(e.pauses, common.ModuleStaking)
}

func (e *Engine) loadPool() (*StakingPool, error) {
	pool, ok, err := e.state.StakingPoolGet()
	if err != nil {
		return nil, err
	}
	if !ok || pool == nil {
		return nil, ErrNotInitialized
	}
	return pool, nil
}

func (e *Engine) loadTier(id uint8) (*StakingTier, error) {
	tier, ok, err := e.state.TierGet(id)
	if err != nil {
		return nil, err
	}
	if !ok || tier == nil {
		return nil, ErrTierNotFound
	}
	return tier, nil
}

func (e *Engine) loadStake(owner [20]byte) (*UserStake, error) {
	stake, ok, err := e.state.StakeGet(owner)
	if err != nil {
		return nil, err
	}
	if !ok || stake == nil {
		return nil, ErrStakeNotFound
	}
	return stake, nil
}

// Initialize creates the pool record with the pool-wide early-exit penalty
// rate. The vault should be pre-funded with a reward reserve before any
// positions mature.
func (e *Engine) Initialize(authority, tokenMint, vault [20]byte, earlyPenaltyBps uint32) (*StakingPool, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if earlyPenaltyBps > 10_000 {
		return nil, ErrInvalidPenalty
	}
	if _, ok, err := e.state.StakingPoolGet(); err != nil {
		return nil, err
	} else if ok {
		return nil, ErrAlreadyInitialized
	}
	pool := &StakingPool{
		Authority:               authority,
		TokenMint:               tokenMint,
		Vault:                   vault,
		TotalStaked:             big.NewInt(0),
		TotalRewardsDistributed: big.NewInt(0),
		EarlyPenaltyBps:         earlyPenaltyBps,
		IsActive:                true,
	}
	if err := e.state.StakingPoolPut(pool); err != nil {
		return nil, err
	}
	return pool.Clone(), nil
}

// CreateTier registers a new lock profile with its duration in days. Only the
// pool authority may call it; tier identifiers are assigned sequentially and
// tier creation stops once the identifier space is exhausted.
func (e *Engine) CreateTier(caller [20]byte, name string, minStake *big.Int, durationDays, apyBps uint32) (*StakingTier, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	pool, err := e.loadPool()
	if err != nil {
		return nil, err
	}
	if caller != pool.Authority {
		return nil, ErrUnauthorized
	}
	if pool.TotalTiers == math.MaxUint8 {
		return nil, ErrTierLimitReached
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxTierNameLength {
		return nil, ErrInvalidTier
	}
	if minStake == nil || minStake.Sign() <= 0 || durationDays == 0 {
		return nil, ErrInvalidTier
	}
	tier := &StakingTier{
		ID:             pool.TotalTiers,
		Name:           name,
		MinStakeAmount: new(big.Int).Set(minStake),
		DurationDays:   durationDays,
		APYBps:         apyBps,
		TotalStaked:    big.NewInt(0),
		IsActive:       true,
	}
	pool.TotalTiers++
	if err := e.state.TierPut(tier); err != nil {
		return nil, err
	}
	if err := e.state.StakingPoolPut(pool); err != nil {
		return nil, err
	}
	e.emit(tierCreatedEvent(tier))
	return tier.Clone(), nil
}

// Stake locks the given principal through a tier. A user holds at most one
// position in the pool; the record persists after closure, so a second Stake
// fails even against a settled position.
func (e *Engine) Stake(owner [20]byte, tierID uint8, amount *big.Int) (*UserStake, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if e.ledger == nil {
		return nil, errLedgerNotConfigured
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	pool, err := e.loadPool()
	if err != nil {
		return nil, err
	}
	if !pool.IsActive {
		return nil, ErrPoolInactive
	}
	tier, err := e.loadTier(tierID)
	if err != nil {
		return nil, err
	}
	if !tier.IsActive {
		return nil, ErrTierNotActive
	}
	if amount.Cmp(tier.MinStakeAmount) < 0 {
		return nil, ErrBelowMinimumStake
	}
	if _, ok, err := e.state.StakeGet(owner); err != nil {
		return nil, err
	} else if ok {
		return nil, ErrStakeExists
	}
	if err := e.ledger.Transfer(owner, pool.Vault, owner, amount); err != nil {
		return nil, err
	}
	now := e.now()
	stake := &UserStake{
		Owner:          owner,
		TierID:         tierID,
		Amount:         new(big.Int).Set(amount),
		StartTime:      now,
		EndTime:        now + int64(tier.DurationDays)*SecondsPerDay,
		RewardsClaimed: big.NewInt(0),
		IsActive:       true,
	}
	tier.TotalStaked = new(big.Int).Add(tier.TotalStaked, amount)
	pool.TotalStaked = new(big.Int).Add(pool.TotalStaked, amount)
	pool.TotalUsers++
	if err := e.state.StakePut(stake); err != nil {
		return nil, err
	}
	if err := e.state.TierPut(tier); err != nil {
		return nil, err
	}
	if err := e.state.StakingPoolPut(pool); err != nil {
		return nil, err
	}
	e.emit(stakedEvent(stake))
	return stake.Clone(), nil
}

// PendingRewards reports the claimable accrual for a position without
// mutating state.
func (e *Engine) PendingRewards(owner [20]byte) (*big.Int, error) {
	if e == nil || e.state == nil {
		return nil, errStateNotConfigured
	}
	stake, err := e.loadStake(owner)
	if err != nil {
		return nil, err
	}
	if !stake.IsActive {
		return big.NewInt(0), nil
	}
	tier, err := e.loadTier(stake.TierID)
	if err != nil {
		return nil, err
	}
	return claimableReward(stake, tier.APYBps, e.now()), nil
}

// ClaimRewards pays out the accrued rewards for an open position from the
// pool vault. Accrual stops at the lock's end time.
func (e *Engine) ClaimRewards(owner [20]byte) (*big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if e.ledger == nil {
		return nil, errLedgerNotConfigured
	}
	pool, err := e.loadPool()
	if err != nil {
		return nil, err
	}
	stake, err := e.loadStake(owner)
	if err != nil {
		return nil, err
	}
	if !stake.IsActive {
		return nil, ErrStakeNotActive
	}
	tier, err := e.loadTier(stake.TierID)
	if err != nil {
		return nil, err
	}
	claimable := claimableReward(stake, tier.APYBps, e.now())
	if claimable.Sign() <= 0 {
		return nil, ErrNoRewardsAvailable
	}
	if err := e.ledger.Transfer(pool.Vault, owner, pool.Vault, claimable); err != nil {
		return nil, err
	}
	stake.RewardsClaimed = new(big.Int).Add(stake.RewardsClaimed, claimable)
	pool.TotalRewardsDistributed = new(big.Int).Add(pool.TotalRewardsDistributed, claimable)
	if err := e.state.StakePut(stake); err != nil {
		return nil, err
	}
	if err := e.state.StakingPoolPut(pool); err != nil {
		return nil, err
	}
	e.emit(rewardsClaimedEvent(stake, claimable))
	return claimable, nil
}

// Unstake closes the caller's position and returns principal plus any
// unclaimed rewards. Before the lock ends the caller must accept the
// early-exit penalty, which is charged against principal only and stays in
// the vault as reward reserve. The record is retained as settled history.
func (e *Engine) Unstake(owner [20]byte, acceptPenalty bool) (*UnstakeReceipt, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if e.ledger == nil {
		return nil, errLedgerNotConfigured
	}
	pool, err := e.loadPool()
	if err != nil {
		return nil, err
	}
	stake, err := e.loadStake(owner)
	if err != nil {
		return nil, err
	}
	if !stake.IsActive {
		return nil, ErrStakeNotActive
	}
	tier, err := e.loadTier(stake.TierID)
	if err != nil {
		return nil, err
	}
	now := e.now()
	early := now < stake.EndTime
	if early && !acceptPenalty {
		return nil, ErrStakingPeriodNotComplete
	}

	penalty := big.NewInt(0)
	principal := new(big.Int).Set(stake.Amount)
	if early {
		penalty = earlyPenalty(stake.Amount, pool.EarlyPenaltyBps)
		principal.Sub(principal, penalty)
	}
	rewards := claimableReward(stake, tier.APYBps, now)

	if principal.Sign() > 0 {
		if err := e.ledger.Transfer(pool.Vault, owner, pool.Vault, principal); err != nil {
			return nil, err
		}
	}
	if rewards.Sign() > 0 {
		if err := e.ledger.Transfer(pool.Vault, owner, pool.Vault, rewards); err != nil {
			return nil, err
		}
	}

	stake.IsActive = false
	stake.RewardsClaimed = new(big.Int).Add(stake.RewardsClaimed, rewards)
	tier.TotalStaked = new(big.Int).Sub(tier.TotalStaked, stake.Amount)
	pool.TotalStaked = new(big.Int).Sub(pool.TotalStaked, stake.Amount)
	pool.TotalRewardsDistributed = new(big.Int).Add(pool.TotalRewardsDistributed, rewards)
	if pool.TotalUsers > 0 {
		pool.TotalUsers--
	}
	if err := e.state.StakePut(stake); err != nil {
		return nil, err
	}
	if err := e.state.TierPut(tier); err != nil {
		return nil, err
	}
	if err := e.state.StakingPoolPut(pool); err != nil {
		return nil, err
	}
	receipt := &UnstakeReceipt{
		Principal: principal,
		Rewards:   rewards,
		Penalty:   penalty,
		Early:     early,
	}
	e.emit(unstakedEvent(stake, receipt))
	return receipt, nil
}

// SetTierStatus toggles a tier's availability for new stakes. Existing
// positions keep accruing regardless.
func (e *Engine) SetTierStatus(caller [20]byte, tierID uint8, isActive bool) error {
	if err := e.ready(); err != nil {
		return err
	}
	pool, err := e.loadPool()
	if err != nil {
		return err
	}
	if caller != pool.Authority {
		return ErrUnauthorized
	}
	tier, err := e.loadTier(tierID)
	if err != nil {
		return err
	}
	tier.IsActive = isActive
	return e.state.TierPut(tier)
}

// Pool returns the pool record without mutating state.
func (e *Engine) Pool() (*StakingPool, error) {
	if e == nil || e.state == nil {
		return nil, errStateNotConfigured
	}
	pool, err := e.loadPool()
	if err != nil {
		return nil, err
	}
	return pool.Clone(), nil
}

// Position returns a user's stake record without mutating state.
func (e *Engine) Position(owner [20]byte) (*UserStake, error) {
	if e == nil || e.state == nil {
		return nil, errStateNotConfigured
	}
	stake, err := e.loadStake(owner)
	if err != nil {
		return nil, err
	}
	return stake.Clone(), nil
}
