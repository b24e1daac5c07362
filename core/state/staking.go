package state

import (
	"math/big"

	"iamaichain/native/staking"
)

type storedTier struct {
	ID             uint8
	Name           string
	MinStakeAmount *big.Int
	DurationDays   uint32
	APYBps         uint32
	TotalStaked    *big.Int
	IsActive       bool
}

type storedStake struct {
	Owner          [20]byte
	TierID         uint8
	Amount         *big.Int
	StartTime      uint64
	EndTime        uint64
	RewardsClaimed *big.Int
	IsActive       bool
}

// StakingPoolGet loads the pool configuration record.
func (m *Manager) StakingPoolGet() (*staking.StakingPool, bool, error) {
	pool := new(staking.StakingPool)
	ok, err := m.getRecord(hashKey(stakingPoolKey), pool)
	if err != nil || !ok {
		return nil, false, err
	}
	return pool, true, nil
}

// StakingPoolPut stores the pool configuration record.
func (m *Manager) StakingPoolPut(pool *staking.StakingPool) error {
	if pool == nil {
		return nil
	}
	return m.putRecord(hashKey(stakingPoolKey), pool)
}

// TierGet loads a tier by identifier.
func (m *Manager) TierGet(id uint8) (*staking.StakingTier, bool, error) {
	stored := new(storedTier)
	ok, err := m.getRecord(hashKey(stakingTierPrefix, []byte{id}), stored)
	if err != nil || !ok {
		return nil, false, err
	}
	return &staking.StakingTier{
		ID:             stored.ID,
		Name:           stored.Name,
		MinStakeAmount: stored.MinStakeAmount,
		DurationDays:   stored.DurationDays,
		APYBps:         stored.APYBps,
		TotalStaked:    stored.TotalStaked,
		IsActive:       stored.IsActive,
	}, true, nil
}

// TierPut stores a tier under its identifier.
func (m *Manager) TierPut(t *staking.StakingTier) error {
	if t == nil {
		return nil
	}
	return m.putRecord(hashKey(stakingTierPrefix, []byte{t.ID}), &storedTier{
		ID:             t.ID,
		Name:           t.Name,
		MinStakeAmount: t.MinStakeAmount,
		DurationDays:   t.DurationDays,
		APYBps:         t.APYBps,
		TotalStaked:    t.TotalStaked,
		IsActive:       t.IsActive,
	})
}

// StakeGet loads a user's position. Positions are keyed by owner alone: one
// record per user for the pool, retained after closure.
func (m *Manager) StakeGet(owner [20]byte) (*staking.UserStake, bool, error) {
	stored := new(storedStake)
	ok, err := m.getRecord(hashKey(userStakePrefix, owner[:]), stored)
	if err != nil || !ok {
		return nil, false, err
	}
	return &staking.UserStake{
		Owner:          stored.Owner,
		TierID:         stored.TierID,
		Amount:         stored.Amount,
		StartTime:      int64(stored.StartTime),
		EndTime:        int64(stored.EndTime),
		RewardsClaimed: stored.RewardsClaimed,
		IsActive:       stored.IsActive,
	}, true, nil
}

// StakePut stores a position under its owner.
func (m *Manager) StakePut(s *staking.UserStake) error {
	if s == nil {
		return nil
	}
	return m.putRecord(hashKey(userStakePrefix, s.Owner[:]), &storedStake{
		Owner:          s.Owner,
		TierID:         s.TierID,
		Amount:         s.Amount,
		StartTime:      uint64(s.StartTime),
		EndTime:        uint64(s.EndTime),
		RewardsClaimed: s.RewardsClaimed,
		IsActive:       s.IsActive,
	})
}
