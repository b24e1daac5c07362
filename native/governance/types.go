package governance

import "math/big"

// Bounds on proposal metadata.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
)

// ProposalStatus enumerates the lifecycle phases of a proposal. Transitions
// are monotone: Active moves to Passed or Rejected exactly once, and only
// Passed proposals ever become Executed.
type ProposalStatus uint8

const (
	// ProposalStatusUnspecified indicates the proposal has not been
	// initialised and should not appear in state.
	ProposalStatusUnspecified ProposalStatus = iota
	// ProposalStatusActive identifies proposals currently accepting votes.
	ProposalStatusActive
	// ProposalStatusPassed marks proposals that met quorum and majority and
	// are awaiting their execution delay.
	ProposalStatusPassed
	// ProposalStatusRejected marks proposals that failed quorum or majority.
	// Rejected is terminal.
	ProposalStatusRejected
	// ProposalStatusExecuted indicates the proposal side effect has been
	// applied.
	ProposalStatusExecuted
)

// String returns the canonical lowercase status label.
func (s ProposalStatus) String() string {
	switch s {
	case ProposalStatusActive:
		return "active"
	case ProposalStatusPassed:
		return "passed"
	case ProposalStatusRejected:
		return "rejected"
	case ProposalStatusExecuted:
		return "executed"
	default:
		return "unspecified"
	}
}

// ProposalType selects the side effect applied when a proposal executes.
type ProposalType uint8

const (
	// ProposalTypeTreasury requests a treasury disbursement.
	ProposalTypeTreasury ProposalType = iota
	// ProposalTypeTechnical requests a protocol parameter or module change.
	ProposalTypeTechnical
	// ProposalTypeCommunity records a community decision with no on-ledger
	// side effect.
	ProposalTypeCommunity
)

// Valid reports whether the proposal type is known.
func (t ProposalType) Valid() bool {
	switch t {
	case ProposalTypeTreasury, ProposalTypeTechnical, ProposalTypeCommunity:
		return true
	default:
		return false
	}
}

// String returns the canonical lowercase type label.
func (t ProposalType) String() string {
	switch t {
	case ProposalTypeTreasury:
		return "treasury"
	case ProposalTypeTechnical:
		return "technical"
	case ProposalTypeCommunity:
		return "community"
	default:
		return "unknown"
	}
}

// Governance is the durable configuration record for the governance process.
type Governance struct {
	Authority            [20]byte `json:"authority"`
	TokenMint            [20]byte `json:"tokenMint"`
	MinTokensForProposal *big.Int `json:"minTokensForProposal"`
	QuorumPct            uint8    `json:"quorumPct"`
	ExecutionDelay       int64    `json:"executionDelay"`
	ProposalCount        uint64   `json:"proposalCount"`
}

// Clone returns a deep copy of the governance record.
func (g *Governance) Clone() *Governance {
	if g == nil {
		return nil
	}
	clone := *g
	if g.MinTokensForProposal != nil {
		clone.MinTokensForProposal = new(big.Int).Set(g.MinTokensForProposal)
	}
	return &clone
}

// Proposal captures one governance decision: its metadata, position in the
// lifecycle, and running vote tallies. TotalVotes always equals VotesFor plus
// VotesAgainst.
type Proposal struct {
	ID            uint64         `json:"id"`
	Proposer      [20]byte       `json:"proposer"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Type          ProposalType   `json:"type"`
	VotesFor      *big.Int       `json:"votesFor"`
	VotesAgainst  *big.Int       `json:"votesAgainst"`
	TotalVotes    *big.Int       `json:"totalVotes"`
	StartTime     int64          `json:"startTime"`
	EndTime       int64          `json:"endTime"`
	ExecutionTime int64          `json:"executionTime"`
	Status        ProposalStatus `json:"status"`
	QuorumReached bool           `json:"quorumReached"`
}

// Clone returns a deep copy of the proposal.
func (p *Proposal) Clone() *Proposal {
	if p == nil {
		return nil
	}
	clone := *p
	if p.VotesFor != nil {
		clone.VotesFor = new(big.Int).Set(p.VotesFor)
	}
	if p.VotesAgainst != nil {
		clone.VotesAgainst = new(big.Int).Set(p.VotesAgainst)
	}
	if p.TotalVotes != nil {
		clone.TotalVotes = new(big.Int).Set(p.TotalVotes)
	}
	return &clone
}

// VoteRecord is the unique ballot for one (voter, proposal) pair. Once
// HasVoted is set the record is immutable.
type VoteRecord struct {
	ProposalID  uint64   `json:"proposalId"`
	Voter       [20]byte `json:"voter"`
	Support     bool     `json:"support"`
	VotingPower *big.Int `json:"votingPower"`
	HasVoted    bool     `json:"hasVoted"`
}

// Clone returns a deep copy of the vote record.
func (v *VoteRecord) Clone() *VoteRecord {
	if v == nil {
		return nil
	}
	clone := *v
	if v.VotingPower != nil {
		clone.VotingPower = new(big.Int).Set(v.VotingPower)
	}
	return &clone
}
