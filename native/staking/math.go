package staking

import "math/big"

var (
	bpsDivisor   = big.NewInt(10_000)
	yearSeconds  = big.NewInt(SecondsPerYear)
	rewardScaler = new(big.Int).Mul(bpsDivisor, yearSeconds)
)

// grossReward computes the total reward accrued by a stake at the given
// instant: amount * apyBps * elapsed / (10000 * secondsPerYear), with
// elapsed clamped to the lock window so accrual stops at EndTime. The
// division truncates, so partial units round in the pool's favour.
func grossReward(stake *UserStake, apyBps uint32, now int64) *big.Int {
	if stake == nil || stake.Amount == nil || stake.Amount.Sign() <= 0 {
		return big.NewInt(0)
	}
	until := now
	if until > stake.EndTime {
		until = stake.EndTime
	}
	elapsed := until - stake.StartTime
	if elapsed <= 0 {
		return big.NewInt(0)
	}
	reward := new(big.Int).Mul(stake.Amount, big.NewInt(int64(apyBps)))
	reward.Mul(reward, big.NewInt(elapsed))
	return reward.Div(reward, rewardScaler)
}

// claimableReward is the gross accrual minus rewards already paid out.
// Never negative.
func claimableReward(stake *UserStake, apyBps uint32, now int64) *big.Int {
	gross := grossReward(stake, apyBps, now)
	claimed := stake.RewardsClaimed
	if claimed == nil {
		return gross
	}
	claimable := new(big.Int).Sub(gross, claimed)
	if claimable.Sign() < 0 {
		return big.NewInt(0)
	}
	return claimable
}

// earlyPenalty computes floor(amount * penaltyBps / 10000). The penalty is
// taken from principal only; accrued rewards are untouched.
func earlyPenalty(amount *big.Int, penaltyBps uint32) *big.Int {
	penalty := new(big.Int).Mul(amount, big.NewInt(int64(penaltyBps)))
	return penalty.Div(penalty, bpsDivisor)
}
