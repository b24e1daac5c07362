package staking

import (
	"encoding/hex"
	"math/big"
	"strconv"

	"iamaichain/core/events"
	"iamaichain/core/types"
)

const (
	// EventTypeTierCreated is emitted when the authority adds a lock profile.
	EventTypeTierCreated = "staking.tier.created"
	// EventTypeStaked is emitted when principal enters the vault.
	EventTypeStaked = "staking.staked"
	// EventTypeRewardsClaimed is emitted when accrued rewards pay out.
	EventTypeRewardsClaimed = "staking.rewards.claimed"
	// EventTypeUnstaked is emitted when a position closes.
	EventTypeUnstaked = "staking.unstaked"
)

type eventEnvelope struct {
	evt *types.Event
}

func (e eventEnvelope) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e eventEnvelope) Event() *types.Event { return e.evt }

// WrapEvent converts a raw event payload into the emitter-friendly envelope.
func WrapEvent(evt *types.Event) events.Event { return eventEnvelope{evt: evt} }

func hexAddr(addr [20]byte) string {
	return "0x" + hex.EncodeToString(addr[:])
}

func bigStr(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func tierCreatedEvent(tier *StakingTier) events.Event {
	return eventEnvelope{evt: &types.Event{
		Type: EventTypeTierCreated,
		Attributes: map[string]string{
			"tierId":       strconv.FormatUint(uint64(tier.ID), 10),
			"name":         tier.Name,
			"apyBps":       strconv.FormatUint(uint64(tier.APYBps), 10),
			"durationDays": strconv.FormatUint(uint64(tier.DurationDays), 10),
		},
	}}
}

func stakedEvent(stake *UserStake) events.Event {
	return eventEnvelope{evt: &types.Event{
		Type: EventTypeStaked,
		Attributes: map[string]string{
			"owner":   hexAddr(stake.Owner),
			"tierId":  strconv.FormatUint(uint64(stake.TierID), 10),
			"amount":  bigStr(stake.Amount),
			"endTime": strconv.FormatInt(stake.EndTime, 10),
		},
	}}
}

func rewardsClaimedEvent(stake *UserStake, amount *big.Int) events.Event {
	return eventEnvelope{evt: &types.Event{
		Type: EventTypeRewardsClaimed,
		Attributes: map[string]string{
			"owner":  hexAddr(stake.Owner),
			"tierId": strconv.FormatUint(uint64(stake.TierID), 10),
			"amount": bigStr(amount),
		},
	}}
}

func unstakedEvent(stake *UserStake, receipt *UnstakeReceipt) events.Event {
	return eventEnvelope{evt: &types.Event{
		Type: EventTypeUnstaked,
		Attributes: map[string]string{
			"owner":     hexAddr(stake.Owner),
			"tierId":    strconv.FormatUint(uint64(stake.TierID), 10),
			"principal": bigStr(receipt.Principal),
			"rewards":   bigStr(receipt.Rewards),
			"penalty":   bigStr(receipt.Penalty),
			"early":     strconv.FormatBool(receipt.Early),
		},
	}}
}
