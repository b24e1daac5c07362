package governance

import (
	"encoding/hex"
	"math/big"
	"strconv"

	"iamaichain/core/events"
	"iamaichain/core/types"
)

const (
	// EventTypeProposalCreated is emitted when a new proposal is admitted.
	EventTypeProposalCreated = "governance.proposal.created"
	// EventTypeVoteCast is emitted when a voter records a ballot.
	EventTypeVoteCast = "governance.vote.cast"
	// EventTypeProposalFinalized is emitted when the outcome is determined.
	EventTypeProposalFinalized = "governance.proposal.finalized"
	// EventTypeProposalExecuted is emitted when a passed proposal's side
	// effect has been applied.
	EventTypeProposalExecuted = "governance.proposal.executed"
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

func proposedEvent(p *Proposal) events.Event {
	return WrapEvent(&types.Event{
		Type: EventTypeProposalCreated,
		Attributes: map[string]string{
			"id":       strconv.FormatUint(p.ID, 10),
			"proposer": hexAddr(p.Proposer),
			"type":     p.Type.String(),
			"start":    strconv.FormatInt(p.StartTime, 10),
			"end":      strconv.FormatInt(p.EndTime, 10),
		},
	})
}

func voteEvent(v *VoteRecord) events.Event {
	return WrapEvent(&types.Event{
		Type: EventTypeVoteCast,
		Attributes: map[string]string{
			"id":      strconv.FormatUint(v.ProposalID, 10),
			"voter":   hexAddr(v.Voter),
			"support": strconv.FormatBool(v.Support),
			"power":   v.VotingPower.String(),
		},
	})
}

func finalizedEvent(p *Proposal, requiredQuorum *big.Int) events.Event {
	return WrapEvent(&types.Event{
		Type: EventTypeProposalFinalized,
		Attributes: map[string]string{
			"id":             strconv.FormatUint(p.ID, 10),
			"status":         p.Status.String(),
			"votesFor":       p.VotesFor.String(),
			"votesAgainst":   p.VotesAgainst.String(),
			"totalVotes":     p.TotalVotes.String(),
			"requiredQuorum": requiredQuorum.String(),
			"quorumReached":  strconv.FormatBool(p.QuorumReached),
		},
	})
}

func executedEvent(p *Proposal) events.Event {
	return WrapEvent(&types.Event{
		Type: EventTypeProposalExecuted,
		Attributes: map[string]string{
			"id":     strconv.FormatUint(p.ID, 10),
			"type":   p.Type.String(),
			"status": p.Status.String(),
		},
	})
}
