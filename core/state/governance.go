package state

import (
	"math/big"

	"iamaichain/native/governance"
)

// RLP has no signed integer support, so records carrying unix timestamps are
// stored through mirror structs with unsigned time fields.

type storedGovernance struct {
	Authority            [20]byte
	TokenMint            [20]byte
	MinTokensForProposal *big.Int
	QuorumPct            uint8
	ExecutionDelay       uint64
	ProposalCount        uint64
}

type storedProposal struct {
	ID            uint64
	Proposer      [20]byte
	Title         string
	Description   string
	Type          uint8
	VotesFor      *big.Int
	VotesAgainst  *big.Int
	TotalVotes    *big.Int
	StartTime     uint64
	EndTime       uint64
	ExecutionTime uint64
	Status        uint8
	QuorumReached bool
}

// GovernanceGet loads the governance configuration record.
func (m *Manager) GovernanceGet() (*governance.Governance, bool, error) {
	stored := new(storedGovernance)
	ok, err := m.getRecord(hashKey(govConfigKey), stored)
	if err != nil || !ok {
		return nil, false, err
	}
	return &governance.Governance{
		Authority:            stored.Authority,
		TokenMint:            stored.TokenMint,
		MinTokensForProposal: stored.MinTokensForProposal,
		QuorumPct:            stored.QuorumPct,
		ExecutionDelay:       int64(stored.ExecutionDelay),
		ProposalCount:        stored.ProposalCount,
	}, true, nil
}

// GovernancePut stores the governance configuration record.
func (m *Manager) GovernancePut(g *governance.Governance) error {
	if g == nil {
		return nil
	}
	return m.putRecord(hashKey(govConfigKey), &storedGovernance{
		Authority:            g.Authority,
		TokenMint:            g.TokenMint,
		MinTokensForProposal: g.MinTokensForProposal,
		QuorumPct:            g.QuorumPct,
		ExecutionDelay:       uint64(g.ExecutionDelay),
		ProposalCount:        g.ProposalCount,
	})
}

// GovernanceNextProposalID increments and returns the proposal sequence.
func (m *Manager) GovernanceNextProposalID() (uint64, error) {
	return m.nextSequence(hashKey(govProposalSeqKey))
}

// ProposalGet loads a proposal by identifier.
func (m *Manager) ProposalGet(id uint64) (*governance.Proposal, bool, error) {
	stored := new(storedProposal)
	ok, err := m.getRecord(hashKey(govProposalPrefix, uint64Key(id)), stored)
	if err != nil || !ok {
		return nil, false, err
	}
	return &governance.Proposal{
		ID:            stored.ID,
		Proposer:      stored.Proposer,
		Title:         stored.Title,
		Description:   stored.Description,
		Type:          governance.ProposalType(stored.Type),
		VotesFor:      stored.VotesFor,
		VotesAgainst:  stored.VotesAgainst,
		TotalVotes:    stored.TotalVotes,
		StartTime:     int64(stored.StartTime),
		EndTime:       int64(stored.EndTime),
		ExecutionTime: int64(stored.ExecutionTime),
		Status:        governance.ProposalStatus(stored.Status),
		QuorumReached: stored.QuorumReached,
	}, true, nil
}

// ProposalPut stores a proposal under its identifier.
func (m *Manager) ProposalPut(p *governance.Proposal) error {
	if p == nil {
		return nil
	}
	return m.putRecord(hashKey(govProposalPrefix, uint64Key(p.ID)), &storedProposal{
		ID:            p.ID,
		Proposer:      p.Proposer,
		Title:         p.Title,
		Description:   p.Description,
		Type:          uint8(p.Type),
		VotesFor:      p.VotesFor,
		VotesAgainst:  p.VotesAgainst,
		TotalVotes:    p.TotalVotes,
		StartTime:     uint64(p.StartTime),
		EndTime:       uint64(p.EndTime),
		ExecutionTime: uint64(p.ExecutionTime),
		Status:        uint8(p.Status),
		QuorumReached: p.QuorumReached,
	})
}

// VoteRecordGet loads the ballot for a voter on a proposal.
func (m *Manager) VoteRecordGet(proposalID uint64, voter [20]byte) (*governance.VoteRecord, bool, error) {
	record := new(governance.VoteRecord)
	ok, err := m.getRecord(hashKey(govVotePrefix, uint64Key(proposalID), voter[:]), record)
	if err != nil || !ok {
		return nil, false, err
	}
	return record, true, nil
}

// VoteRecordPut stores a ballot under its proposal and voter.
func (m *Manager) VoteRecordPut(record *governance.VoteRecord) error {
	if record == nil {
		return nil
	}
	return m.putRecord(hashKey(govVotePrefix, uint64Key(record.ProposalID), record.Voter[:]), record)
}
