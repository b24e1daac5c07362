package staking

import (
	"errors"
	"math/big"
	"testing"

	"iamaichain/core/ledger"
)

type mockState struct {
	pool   *StakingPool
	tiers  map[uint8]*StakingTier
	stakes map[[20]byte]*UserStake
}

func newMockState() *mockState {
	return &mockState{
		tiers:  make(map[uint8]*StakingTier),
		stakes: make(map[[20]byte]*UserStake),
	}
}

func (m *mockState) StakingPoolGet() (*StakingPool, bool, error) {
	if m.pool == nil {
		return nil, false, nil
	}
	return m.pool.Clone(), true, nil
}

func (m *mockState) StakingPoolPut(p *StakingPool) error {
	m.pool = p.Clone()
	return nil
}

func (m *mockState) TierGet(id uint8) (*StakingTier, bool, error) {
	tier, ok := m.tiers[id]
	if !ok {
		return nil, false, nil
	}
	return tier.Clone(), true, nil
}

func (m *mockState) TierPut(t *StakingTier) error {
	m.tiers[t.ID] = t.Clone()
	return nil
}

func (m *mockState) StakeGet(owner [20]byte) (*UserStake, bool, error) {
	stake, ok := m.stakes[owner]
	if !ok {
		return nil, false, nil
	}
	return stake.Clone(), true, nil
}

func (m *mockState) StakePut(s *UserStake) error {
	m.stakes[s.Owner] = s.Clone()
	return nil
}

type mockLedger struct {
	balances map[[20]byte]*big.Int
}

func newMockLedger() *mockLedger {
	return &mockLedger{balances: make(map[[20]byte]*big.Int)}
}

func (m *mockLedger) balance(addr [20]byte) *big.Int {
	if b, ok := m.balances[addr]; ok {
		return b
	}
	return big.NewInt(0)
}

func (m *mockLedger) Transfer(from, to, authority [20]byte, amount *big.Int) error {
	if authority != from {
		return ledger.ErrUnauthorized
	}
	if m.balance(from).Cmp(amount) < 0 {
		return ledger.ErrInsufficientFunds
	}
	if amount.Sign() == 0 || from == to {
		return nil
	}
	m.balances[from] = new(big.Int).Sub(m.balance(from), amount)
	m.balances[to] = new(big.Int).Add(m.balance(to), amount)
	return nil
}

func (m *mockLedger) MintTo(mint, to, authority [20]byte, amount *big.Int) error {
	m.balances[to] = new(big.Int).Add(m.balance(to), amount)
	return nil
}

func (m *mockLedger) BurnFrom(mint, from, authority [20]byte, amount *big.Int) error {
	if m.balance(from).Cmp(amount) < 0 {
		return ledger.ErrInsufficientFunds
	}
	m.balances[from] = new(big.Int).Sub(m.balance(from), amount)
	return nil
}

func (m *mockLedger) BalanceOf(addr [20]byte) (*big.Int, error) {
	return new(big.Int).Set(m.balance(addr)), nil
}

type testClock struct {
	now int64
}

func (c *testClock) Now() int64 { return c.now }

func addr(last byte) [20]byte {
	var out [20]byte
	out[19] = last
	return out
}

var (
	authority = addr(0x01)
	mint      = addr(0x02)
	vault     = addr(0x03)
	alice     = addr(0x04)
	bob       = addr(0x05)
)

const (
	dayInSeconds  = int64(86_400)
	yearInSeconds = int64(SecondsPerYear)
	yearInDays    = uint32(365)
	startEpoch    = int64(1_700_000_000)
)

func newTestEngine(t *testing.T) (*Engine, *mockState, *mockLedger, *testClock) {
	t.Helper()
	state := newMockState()
	bank := newMockLedger()
	clock := &testClock{now: startEpoch}
	engine := NewEngine()
	engine.SetState(state)
	engine.SetLedger(bank)
	engine.SetNowFunc(clock.Now)
	if _, err := engine.Initialize(authority, mint, vault, 500); err != nil {
		t.Fatalf("initialize pool: %v", err)
	}
	// Reward reserve for payouts.
	bank.balances[vault] = big.NewInt(1_000_000)
	return engine, state, bank, clock
}

func mustTier(t *testing.T, engine *Engine, apyBps uint32, durationDays uint32) *StakingTier {
	t.Helper()
	tier, err := engine.CreateTier(authority, "Gold", big.NewInt(100), durationDays, apyBps)
	if err != nil {
		t.Fatalf("create tier: %v", err)
	}
	return tier
}

func TestInitializeTwiceFails(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	if _, err := engine.Initialize(authority, mint, vault, 500); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestInitializeRejectsExcessivePenalty(t *testing.T) {
	engine := NewEngine()
	engine.SetState(newMockState())
	engine.SetLedger(newMockLedger())
	if _, err := engine.Initialize(authority, mint, vault, 10_001); !errors.Is(err, ErrInvalidPenalty) {
		t.Fatalf("expected ErrInvalidPenalty, got %v", err)
	}
}

func TestCreateTierRequiresAuthority(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	if _, err := engine.CreateTier(alice, "Gold", big.NewInt(100), yearInDays, 1_000); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCreateTierValidatesParameters(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	if _, err := engine.CreateTier(authority, "", big.NewInt(100), yearInDays, 1_000); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier for empty name, got %v", err)
	}
	if _, err := engine.CreateTier(authority, "Gold", big.NewInt(0), yearInDays, 1_000); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier for zero minimum, got %v", err)
	}
	if _, err := engine.CreateTier(authority, "Gold", big.NewInt(100), 0, 1_000); !errors.Is(err, ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier for zero duration, got %v", err)
	}
}

func TestCreateTierAssignsSequentialIDs(t *testing.T) {
	engine, state, _, _ := newTestEngine(t)
	first := mustTier(t, engine, 500, yearInDays)
	second, err := engine.CreateTier(authority, "Platinum", big.NewInt(1_000), 2*yearInDays, 1_500)
	if err != nil {
		t.Fatalf("second tier: %v", err)
	}
	if first.ID != 0 || second.ID != 1 {
		t.Fatalf("tier ids %d, %d", first.ID, second.ID)
	}
	if state.pool.TotalTiers != 2 {
		t.Fatalf("pool tier count %d, want 2", state.pool.TotalTiers)
	}
}

func TestCreateTierStopsAtIdentifierLimit(t *testing.T) {
	engine, state, _, _ := newTestEngine(t)
	state.pool.TotalTiers = 255
	if _, err := engine.CreateTier(authority, "Overflow", big.NewInt(100), yearInDays, 1_000); !errors.Is(err, ErrTierLimitReached) {
		t.Fatalf("expected ErrTierLimitReached, got %v", err)
	}
}

func TestStakeMovesPrincipalToVault(t *testing.T) {
	engine, state, bank, _ := newTestEngine(t)
	tier := mustTier(t, engine, 1_000, yearInDays)
	bank.balances[alice] = big.NewInt(1_500)

	stake, err := engine.Stake(alice, tier.ID, big.NewInt(1_000))
	if err != nil {
		t.Fatalf("stake: %v", err)
	}
	if stake.EndTime != startEpoch+yearInSeconds {
		t.Fatalf("end time %d, want %d", stake.EndTime, startEpoch+yearInSeconds)
	}
	if got := bank.balance(alice).Int64(); got != 500 {
		t.Fatalf("alice balance %d, want 500", got)
	}
	if got := bank.balance(vault).Int64(); got != 1_001_000 {
		t.Fatalf("vault balance %d, want 1001000", got)
	}
	if state.pool.TotalStaked.Int64() != 1_000 || state.pool.TotalUsers != 1 {
		t.Fatalf("pool totals %v/%d", state.pool.TotalStaked, state.pool.TotalUsers)
	}
	if got := state.tiers[tier.ID].TotalStaked.Int64(); got != 1_000 {
		t.Fatalf("tier total staked %d, want 1000", got)
	}
}

func TestStakeBelowMinimumFails(t *testing.T) {
	engine, _, bank, _ := newTestEngine(t)
	tier := mustTier(t, engine, 1_000, yearInDays)
	bank.balances[alice] = big.NewInt(1_000)
	if _, err := engine.Stake(alice, tier.ID, big.NewInt(99)); !errors.Is(err, ErrBelowMinimumStake) {
		t.Fatalf("expected ErrBelowMinimumStake, got %v", err)
	}
}

func TestStakeOncePerPool(t *testing.T) {
	engine, _, bank, _ := newTestEngine(t)
	first := mustTier(t, engine, 1_000, yearInDays)
	second, err := engine.CreateTier(authority, "Platinum", big.NewInt(100), 2*yearInDays, 1_500)
	if err != nil {
		t.Fatalf("second tier: %v", err)
	}
	bank.balances[alice] = big.NewInt(2_000)
	if _, err := engine.Stake(alice, first.ID, big.NewInt(1_000)); err != nil {
		t.Fatalf("first stake: %v", err)
	}
	if _, err := engine.Stake(alice, first.ID, big.NewInt(1_000)); !errors.Is(err, ErrStakeExists) {
		t.Fatalf("expected ErrStakeExists for same tier, got %v", err)
	}
	// The position is per pool, so another tier is equally blocked.
	if _, err := engine.Stake(alice, second.ID, big.NewInt(1_000)); !errors.Is(err, ErrStakeExists) {
		t.Fatalf("expected ErrStakeExists for other tier, got %v", err)
	}
}

func TestStakeIntoRetiredTierFails(t *testing.T) {
	engine, _, bank, _ := newTestEngine(t)
	tier := mustTier(t, engine, 1_000, yearInDays)
	bank.balances[alice] = big.NewInt(1_000)
	if err := engine.SetTierStatus(authority, tier.ID, false); err != nil {
		t.Fatalf("retire tier: %v", err)
	}
	if _, err := engine.Stake(alice, tier.ID, big.NewInt(1_000)); !errors.Is(err, ErrTierNotActive) {
		t.Fatalf("expected ErrTierNotActive, got %v", err)
	}
}

func TestRewardAccrualFullYear(t *testing.T) {
	// 1000 staked at 10% APY for exactly one year accrues 100.
	engine, _, bank, clock := newTestEngine(t)
	tier := mustTier(t, engine, 1_000, yearInDays)
	bank.balances[alice] = big.NewInt(1_000)
	if _, err := engine.Stake(alice, tier.ID, big.NewInt(1_000)); err != nil {
		t.Fatalf("stake: %v", err)
	}
	clock.now = startEpoch + yearInSeconds
	pending, err := engine.PendingRewards(alice)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if pending.Int64() != 100 {
		t.Fatalf("pending %v, want 100", pending)
	}
}

func TestRewardAccrualStopsAtLockEnd(t *testing.T) {
	engine, _, bank, clock := newTestEngine(t)
	tier := mustTier(t, engine, 1_000, yearInDays)
	bank.balances[alice] = big.NewInt(1_000)
	if _, err := engine.Stake(alice, tier.ID, big.NewInt(1_000)); err != nil {
		t.Fatalf("stake: %v", err)
	}
	clock.now = startEpoch + 3*yearInSeconds
	pending, err := engine.PendingRewards(alice)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if pending.Int64() != 100 {
		t.Fatalf("pending %v, want 100 (clamped to lock end)", pending)
	}
}

func TestRewardAccrualMonotonic(t *testing.T) {
	engine, _, bank, clock := newTestEngine(t)
	tier := mustTier(t, engine, 1_000, yearInDays)
	bank.balances[alice] = big.NewInt(1_000)
	if _, err := engine.Stake(alice, tier.ID, big.NewInt(1_000)); err != nil {
		t.Fatalf("stake: %v", err)
	}
	prev := big.NewInt(0)
	for day := int64(0); day <= 365; day += 30 {
		clock.now = startEpoch + day*dayInSeconds
		pending, err := engine.PendingRewards(alice)
		if err != nil {
			t.Fatalf("day %d: pending: %v", day, err)
		}
		if pending.Cmp(prev) < 0 {
			t.Fatalf("day %d: accrual decreased from %v to %v", day, prev, pending)
		}
		prev = pending
	}
}

func TestClaimRewardsDeductsClaimedFromAccrual(t *testing.T) {
	engine, state, bank, clock := newTestEngine(t)
	tier := mustTier(t, engine, 1_000, yearInDays)
	bank.balances[alice] = big.NewInt(1_000)
	if _, err := engine.Stake(alice, tier.ID, big.NewInt(1_000)); err != nil {
		t.Fatalf("stake: %v", err)
	}

	clock.now = startEpoch + yearInSeconds/2
	claimed, err := engine.ClaimRewards(alice)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed.Int64() != 50 {
		t.Fatalf("claimed %v, want 50", claimed)
	}
	if got := bank.balance(alice).Int64(); got != 50 {
		t.Fatalf("alice balance %d after claim, want 50", got)
	}

	// Immediate second claim has nothing left.
	if _, err := engine.ClaimRewards(alice); !errors.Is(err, ErrNoRewardsAvailable) {
		t.Fatalf("expected ErrNoRewardsAvailable, got %v", err)
	}

	// The other half becomes claimable at lock end.
	clock.now = startEpoch + yearInSeconds
	claimed, err = engine.ClaimRewards(alice)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if claimed.Int64() != 50 {
		t.Fatalf("second claim %v, want 50", claimed)
	}
	if got := state.stakes[alice].RewardsClaimed.Int64(); got != 100 {
		t.Fatalf("rewards claimed total %d, want 100", got)
	}
	if got := state.pool.TotalRewardsDistributed.Int64(); got != 100 {
		t.Fatalf("pool rewards distributed %d, want 100", got)
	}
}

func TestUnstakeBeforeLockWithoutPenaltyConsentFails(t *testing.T) {
	engine, _, bank, clock := newTestEngine(t)
	tier := mustTier(t, engine, 1_000, yearInDays)
	bank.balances[alice] = big.NewInt(1_000)
	if _, err := engine.Stake(alice, tier.ID, big.NewInt(1_000)); err != nil {
		t.Fatalf("stake: %v", err)
	}
	clock.now = startEpoch + 30*dayInSeconds
	if _, err := engine.Unstake(alice, false); !errors.Is(err, ErrStakingPeriodNotComplete) {
		t.Fatalf("expected ErrStakingPeriodNotComplete, got %v", err)
	}
}

func TestUnstakeEarlyChargesPenaltyOnPrincipalOnly(t *testing.T) {
	engine, state, bank, clock := newTestEngine(t)
	tier := mustTier(t, engine, 1_000, yearInDays)
	bank.balances[alice] = big.NewInt(1_000)
	if _, err := engine.Stake(alice, tier.ID, big.NewInt(1_000)); err != nil {
		t.Fatalf("stake: %v", err)
	}

	clock.now = startEpoch + yearInSeconds/2
	receipt, err := engine.Unstake(alice, true)
	if err != nil {
		t.Fatalf("unstake: %v", err)
	}
	if !receipt.Early {
		t.Fatalf("receipt not flagged early")
	}
	if receipt.Penalty.Int64() != 50 {
		t.Fatalf("penalty %v, want 50", receipt.Penalty)
	}
	if receipt.Principal.Int64() != 950 {
		t.Fatalf("principal %v, want 950", receipt.Principal)
	}
	if receipt.Rewards.Int64() != 50 {
		t.Fatalf("rewards %v, want 50 (half-year accrual)", receipt.Rewards)
	}
	if got := bank.balance(alice).Int64(); got != 1_000 {
		t.Fatalf("alice balance %d, want 1000", got)
	}
	if state.pool.TotalStaked.Sign() != 0 || state.pool.TotalUsers != 0 {
		t.Fatalf("pool totals %v/%d after unstake", state.pool.TotalStaked, state.pool.TotalUsers)
	}
	if state.tiers[tier.ID].TotalStaked.Sign() != 0 {
		t.Fatalf("tier total staked %v after unstake", state.tiers[tier.ID].TotalStaked)
	}
	if state.stakes[alice].IsActive {
		t.Fatalf("stake still active")
	}
}

func TestUnstakeAfterLockReturnsFullPrincipalAndRewards(t *testing.T) {
	engine, state, bank, clock := newTestEngine(t)
	tier := mustTier(t, engine, 1_000, yearInDays)
	bank.balances[alice] = big.NewInt(1_000)
	if _, err := engine.Stake(alice, tier.ID, big.NewInt(1_000)); err != nil {
		t.Fatalf("stake: %v", err)
	}

	clock.now = startEpoch + yearInSeconds + dayInSeconds
	receipt, err := engine.Unstake(alice, false)
	if err != nil {
		t.Fatalf("unstake: %v", err)
	}
	if receipt.Early || receipt.Penalty.Sign() != 0 {
		t.Fatalf("mature unstake flagged early (%v penalty %v)", receipt.Early, receipt.Penalty)
	}
	if receipt.Principal.Int64() != 1_000 || receipt.Rewards.Int64() != 100 {
		t.Fatalf("receipt %v/%v, want 1000/100", receipt.Principal, receipt.Rewards)
	}
	if got := bank.balance(alice).Int64(); got != 1_100 {
		t.Fatalf("alice balance %d, want 1100", got)
	}
	if state.pool.TotalStaked.Sign() != 0 {
		t.Fatalf("pool total staked %v after unstake", state.pool.TotalStaked)
	}
	if got := state.pool.TotalRewardsDistributed.Int64(); got != 100 {
		t.Fatalf("pool rewards distributed %d, want 100", got)
	}
}

func TestUnstakeSubtractsOriginalAmountAfterPartialClaims(t *testing.T) {
	engine, state, bank, clock := newTestEngine(t)
	tier := mustTier(t, engine, 1_000, yearInDays)
	bank.balances[alice] = big.NewInt(1_000)
	bank.balances[bob] = big.NewInt(500)
	if _, err := engine.Stake(alice, tier.ID, big.NewInt(1_000)); err != nil {
		t.Fatalf("alice stake: %v", err)
	}
	if _, err := engine.Stake(bob, tier.ID, big.NewInt(500)); err != nil {
		t.Fatalf("bob stake: %v", err)
	}

	clock.now = startEpoch + yearInSeconds/2
	if _, err := engine.ClaimRewards(alice); err != nil {
		t.Fatalf("claim: %v", err)
	}
	clock.now = startEpoch + yearInSeconds
	receipt, err := engine.Unstake(alice, false)
	if err != nil {
		t.Fatalf("unstake: %v", err)
	}
	if receipt.Rewards.Int64() != 50 {
		t.Fatalf("residual rewards %v, want 50", receipt.Rewards)
	}
	if state.pool.TotalStaked.Int64() != 500 {
		t.Fatalf("pool total staked %v, want 500 (bob only)", state.pool.TotalStaked)
	}
	if state.pool.TotalUsers != 1 {
		t.Fatalf("pool users %d, want 1", state.pool.TotalUsers)
	}
	// Both halves of alice's accrual count as distributed.
	if got := state.pool.TotalRewardsDistributed.Int64(); got != 100 {
		t.Fatalf("pool rewards distributed %d, want 100", got)
	}
}

func TestTierTotalsNeverExceedPoolTotal(t *testing.T) {
	engine, state, bank, _ := newTestEngine(t)
	first := mustTier(t, engine, 1_000, yearInDays)
	second, err := engine.CreateTier(authority, "Platinum", big.NewInt(100), 2*yearInDays, 1_500)
	if err != nil {
		t.Fatalf("second tier: %v", err)
	}
	bank.balances[alice] = big.NewInt(1_000)
	bank.balances[bob] = big.NewInt(500)
	if _, err := engine.Stake(alice, first.ID, big.NewInt(1_000)); err != nil {
		t.Fatalf("alice stake: %v", err)
	}
	if _, err := engine.Stake(bob, second.ID, big.NewInt(500)); err != nil {
		t.Fatalf("bob stake: %v", err)
	}

	pool := state.pool
	for id, tier := range state.tiers {
		if tier.TotalStaked.Cmp(pool.TotalStaked) > 0 {
			t.Fatalf("tier %d total %v exceeds pool total %v", id, tier.TotalStaked, pool.TotalStaked)
		}
	}
	sum := new(big.Int).Add(state.tiers[first.ID].TotalStaked, state.tiers[second.ID].TotalStaked)
	if sum.Cmp(pool.TotalStaked) != 0 {
		t.Fatalf("tier totals %v, pool total %v", sum, pool.TotalStaked)
	}
}

func TestRestakeAfterCloseFails(t *testing.T) {
	engine, state, bank, clock := newTestEngine(t)
	tier := mustTier(t, engine, 1_000, yearInDays)
	bank.balances[alice] = big.NewInt(1_000)
	if _, err := engine.Stake(alice, tier.ID, big.NewInt(1_000)); err != nil {
		t.Fatalf("stake: %v", err)
	}
	clock.now = startEpoch + yearInSeconds
	if _, err := engine.Unstake(alice, false); err != nil {
		t.Fatalf("unstake: %v", err)
	}
	// The settled record stays as history and keeps blocking new positions.
	if _, err := engine.Stake(alice, tier.ID, big.NewInt(500)); !errors.Is(err, ErrStakeExists) {
		t.Fatalf("expected ErrStakeExists, got %v", err)
	}
	settled, ok := state.stakes[alice]
	if !ok || settled.IsActive {
		t.Fatalf("settled record missing or active (ok=%v)", ok)
	}
	if settled.Amount.Int64() != 1_000 || settled.RewardsClaimed.Int64() != 100 {
		t.Fatalf("settled record %v/%v, want 1000/100", settled.Amount, settled.RewardsClaimed)
	}
}
