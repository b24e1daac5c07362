package staking

import "math/big"

// MaxTierNameLength bounds tier display names.
const MaxTierNameLength = 32

// SecondsPerYear is the accrual denominator for APY rates.
const SecondsPerYear = 31_536_000

// SecondsPerDay converts tier lock durations into lock windows.
const SecondsPerDay = 86_400

// StakingPool is the durable pool configuration and aggregate accounting
// record. The vault address holds all staked principal plus the reward
// reserve; only this engine disburses from it. The early-exit penalty is a
// pool-wide rate in basis points.
type StakingPool struct {
	Authority               [20]byte `json:"authority"`
	TokenMint               [20]byte `json:"tokenMint"`
	Vault                   [20]byte `json:"vault"`
	TotalStaked             *big.Int `json:"totalStaked"`
	TotalRewardsDistributed *big.Int `json:"totalRewardsDistributed"`
	EarlyPenaltyBps         uint32   `json:"earlyPenaltyBps"`
	TotalTiers              uint8    `json:"totalTiers"`
	TotalUsers              uint64   `json:"totalUsers"`
	IsActive                bool     `json:"isActive"`
}

// Clone returns a deep copy of the pool record.
func (p *StakingPool) Clone() *StakingPool {
	if p == nil {
		return nil
	}
	clone := *p
	if p.TotalStaked != nil {
		clone.TotalStaked = new(big.Int).Set(p.TotalStaked)
	}
	if p.TotalRewardsDistributed != nil {
		clone.TotalRewardsDistributed = new(big.Int).Set(p.TotalRewardsDistributed)
	}
	return &clone
}

// StakingTier defines one lock profile: minimum principal, lock duration in
// days, and reward rate in basis points. TotalStaked tracks the principal
// currently locked through this tier and never exceeds the pool total.
type StakingTier struct {
	ID             uint8    `json:"id"`
	Name           string   `json:"name"`
	MinStakeAmount *big.Int `json:"minStakeAmount"`
	DurationDays   uint32   `json:"durationDays"`
	APYBps         uint32   `json:"apyBps"`
	TotalStaked    *big.Int `json:"totalStaked"`
	IsActive       bool     `json:"isActive"`
}

// Clone returns a deep copy of the tier record.
func (t *StakingTier) Clone() *StakingTier {
	if t == nil {
		return nil
	}
	clone := *t
	if t.MinStakeAmount != nil {
		clone.MinStakeAmount = new(big.Int).Set(t.MinStakeAmount)
	}
	if t.TotalStaked != nil {
		clone.TotalStaked = new(big.Int).Set(t.TotalStaked)
	}
	return &clone
}

// UserStake tracks one user's position in the pool; a user holds at most one
// and the record survives closure as an auditable history entry.
// RewardsClaimed is the running total already paid out, so claimable rewards
// are always the gross accrual minus this figure.
type UserStake struct {
	Owner          [20]byte `json:"owner"`
	TierID         uint8    `json:"tierId"`
	Amount         *big.Int `json:"amount"`
	StartTime      int64    `json:"startTime"`
	EndTime        int64    `json:"endTime"`
	RewardsClaimed *big.Int `json:"rewardsClaimed"`
	IsActive       bool     `json:"isActive"`
}

// Clone returns a deep copy of the stake record.
func (s *UserStake) Clone() *UserStake {
	if s == nil {
		return nil
	}
	clone := *s
	if s.Amount != nil {
		clone.Amount = new(big.Int).Set(s.Amount)
	}
	if s.RewardsClaimed != nil {
		clone.RewardsClaimed = new(big.Int).Set(s.RewardsClaimed)
	}
	return &clone
}
