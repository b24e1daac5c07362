package governance

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"iamaichain/core/events"
	"iamaichain/core/ledger"
	"iamaichain/native/common"
)

type engineState interface {
	GovernanceGet() (*Governance, bool, error)
	GovernancePut(g *Governance) error
	GovernanceNextProposalID() (uint64, error)
	ProposalGet(id uint64) (*Proposal, bool, error)
	ProposalPut(p *Proposal) error
	VoteRecordGet(proposalID uint64, voter [20]byte) (*VoteRecord, bool, error)
	VoteRecordPut(v *VoteRecord) error
}

// SupplyView reads the live total supply of the governance token. Quorum is
// always computed against the current TokenInfo record, never a constant.
type SupplyView interface {
	TotalSupply(mint [20]byte) (*big.Int, error)
}

// Executor applies the type-specific side effect of a passed proposal.
type Executor func(p *Proposal) error

func defaultNow() int64 { return time.Now().Unix() }

// Engine owns the proposal lifecycle: admission, voting, finalization, and
// execution. Voting weight is a read-only query against token balances; the
// engine never moves funds itself.
type Engine struct {
	state     engineState
	balances  ledger.View
	supply    SupplyView
	emitter   events.Emitter
	pauses    common.PauseView
	nowFn     func() int64
	executors map[ProposalType]Executor
}

// NewEngine constructs a governance engine with default no-op dependencies.
func NewEngine() *Engine {
	return &Engine{
		emitter:   events.NoopEmitter{},
		nowFn:     defaultNow,
		executors: make(map[ProposalType]Executor),
	}
}

// SetState wires the engine to the state backend providing persistence helpers.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetBalanceView configures the read-only balance source for voting weight.
func (e *Engine) SetBalanceView(view ledger.View) { e.balances = view }

// SetSupplyView configures the live supply source used for quorum.
func (e *Engine) SetSupplyView(view SupplyView) { e.supply = view }

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
		e.nowFn = defaultNow
		return
	}
	e.nowFn = now
}

// SetExecutor registers the side-effect handler for a proposal type.
// Proposals of a type without a registered executor execute as no-ops.
func (e *Engine) SetExecutor(t ProposalType, exec Executor) {
	if e == nil || exec == nil {
		return
	}
	e.executors[t] = exec
}

func (e *Engine) emit(evt events.Event) {
	if e == nil || e.emitter == nil || evt == nil {
		return
	}
	e.emitter.Emit(evt)
}

func (e *Engine) now() int64 {
	if e == nil || e.nowFn == nil {
		return defaultNow()
	}
	return e.nowFn()
}

func (e *Engine) ready() error {
	if e == nil || e.state == nil {
		return errStateNotConfigured
	}
	return common.Guard(e.pauses, common.ModuleGovernance)
}

func (e *Engine) loadGovernance() (*Governance, error) {
	gov, ok, err := e.state.GovernanceGet()
	if err != nil {
		return nil, err
	}
	if !ok || gov == nil {
		return nil, ErrNotInitialized
	}
	return gov, nil
}

func (e *Engine) loadProposal(id uint64) (*Proposal, error) {
	proposal, ok, err := e.state.ProposalGet(id)
	if err != nil {
		return nil, err
	}
	if !ok || proposal == nil {
		return nil, fmt.Errorf("%w: %d", ErrProposalNotFound, id)
	}
	return proposal, nil
}

// Initialize creates the governance configuration record.
func (e *Engine) Initialize(authority, tokenMint [20]byte, minTokensForProposal *big.Int, quorumPct uint8, executionDelay int64) (*Governance, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if quorumPct > 100 {
		return nil, ErrInvalidQuorum
	}
	if minTokensForProposal == nil || minTokensForProposal.Sign() < 0 || executionDelay < 0 {
		return nil, ErrInvalidProposal
	}
	if _, ok, err := e.state.GovernanceGet(); err != nil {
		return nil, err
	} else if ok {
		return nil, ErrAlreadyInitialized
	}
	gov := &Governance{
		Authority:            authority,
		TokenMint:            tokenMint,
		MinTokensForProposal: new(big.Int).Set(minTokensForProposal),
		QuorumPct:            quorumPct,
		ExecutionDelay:       executionDelay,
	}
	if err := e.state.GovernancePut(gov); err != nil {
		return nil, err
	}
	return gov.Clone(), nil
}

// CreateProposal admits a proposal after checking the proposer holds the
// configured token threshold, and opens its voting window at the current
// clock reading.
func (e *Engine) CreateProposal(proposer [20]byte, title, description string, proposalType ProposalType, votingPeriod int64) (*Proposal, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if e.balances == nil {
		return nil, errBalancesNotConfigured
	}
	title = strings.TrimSpace(title)
	if title == "" || len(title) > MaxTitleLength || len(description) > MaxDescriptionLength {
		return nil, ErrInvalidProposal
	}
	if !proposalType.Valid() || votingPeriod <= 0 {
		return nil, ErrInvalidProposal
	}
	gov, err := e.loadGovernance()
	if err != nil {
		return nil, err
	}
	balance, err := e.balances.BalanceOf(proposer)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(gov.MinTokensForProposal) < 0 {
		return nil, ErrInsufficientTokensForProposal
	}

	id, err := e.state.GovernanceNextProposalID()
	if err != nil {
		return nil, err
	}
	now := e.now()
	proposal := &Proposal{
		ID:           id,
		Proposer:     proposer,
		Title:        title,
		Description:  description,
		Type:         proposalType,
		VotesFor:     big.NewInt(0),
		VotesAgainst: big.NewInt(0),
		TotalVotes:   big.NewInt(0),
		StartTime:    now,
		EndTime:      now + votingPeriod,
		Status:       ProposalStatusActive,
	}
	gov.ProposalCount++
	if err := e.state.ProposalPut(proposal); err != nil {
		return nil, err
	}
	if err := e.state.GovernancePut(gov); err != nil {
		return nil, err
	}
	e.emit(proposedEvent(proposal))
	return proposal.Clone(), nil
}

// Vote records the caller's ballot. Each (voter, proposal) pair votes at most
// once, and the claimed voting power must be covered by the voter's current
// token balance.
func (e *Engine) Vote(proposalID uint64, voter [20]byte, support bool, votingPower *big.Int) error {
	if err := e.ready(); err != nil {
		return err
	}
	if e.balances == nil {
		return errBalancesNotConfigured
	}
	if votingPower == nil || votingPower.Sign() <= 0 {
		return ErrInvalidVotingPower
	}
	proposal, err := e.loadProposal(proposalID)
	if err != nil {
		return err
	}
	if proposal.Status != ProposalStatusActive {
		return ErrProposalNotActive
	}
	now := e.now()
	if now < proposal.StartTime || now > proposal.EndTime {
		return ErrVotingPeriodEnded
	}
	balance, err := e.balances.BalanceOf(voter)
	if err != nil {
		return err
	}
	if votingPower.Cmp(balance) > 0 {
		return ErrInsufficientVotingPower
	}
	if existing, ok, err := e.state.VoteRecordGet(proposalID, voter); err != nil {
		return err
	} else if ok && existing != nil && existing.HasVoted {
		return ErrAlreadyVoted
	}

	record := &VoteRecord{
		ProposalID:  proposalID,
		Voter:       voter,
		Support:     support,
		VotingPower: new(big.Int).Set(votingPower),
		HasVoted:    true,
	}
	if support {
		proposal.VotesFor = new(big.Int).Add(proposal.VotesFor, votingPower)
	} else {
		proposal.VotesAgainst = new(big.Int).Add(proposal.VotesAgainst, votingPower)
	}
	proposal.TotalVotes = new(big.Int).Add(proposal.TotalVotes, votingPower)
	if err := e.state.VoteRecordPut(record); err != nil {
		return err
	}
	if err := e.state.ProposalPut(proposal); err != nil {
		return err
	}
	e.emit(voteEvent(record))
	return nil
}

// Finalize closes the voting window and transitions the proposal to Passed or
// Rejected. Quorum is computed against the live total supply of the
// governance token. Finalize is a one-shot transition: re-finalizing fails
// with ErrProposalNotActive.
func (e *Engine) Finalize(proposalID uint64) (ProposalStatus, error) {
	if err := e.ready(); err != nil {
		return ProposalStatusUnspecified, err
	}
	if e.supply == nil {
		return ProposalStatusUnspecified, errSupplyNotConfigured
	}
	gov, err := e.loadGovernance()
	if err != nil {
		return ProposalStatusUnspecified, err
	}
	proposal, err := e.loadProposal(proposalID)
	if err != nil {
		return ProposalStatusUnspecified, err
	}
	if proposal.Status != ProposalStatusActive {
		return proposal.Status, ErrProposalNotActive
	}
	now := e.now()
	if now <= proposal.EndTime {
		return ProposalStatusUnspecified, ErrVotingPeriodNotEnded
	}

	totalSupply, err := e.supply.TotalSupply(gov.TokenMint)
	if err != nil {
		return ProposalStatusUnspecified, err
	}
	requiredQuorum := new(big.Int).Mul(totalSupply, big.NewInt(int64(gov.QuorumPct)))
	requiredQuorum = requiredQuorum.Div(requiredQuorum, big.NewInt(100))

	proposal.QuorumReached = proposal.TotalVotes.Cmp(requiredQuorum) >= 0
	if proposal.QuorumReached && proposal.VotesFor.Cmp(proposal.VotesAgainst) > 0 {
		proposal.Status = ProposalStatusPassed
		proposal.ExecutionTime = now + gov.ExecutionDelay
	} else {
		proposal.Status = ProposalStatusRejected
	}
	if err := e.state.ProposalPut(proposal); err != nil {
		return ProposalStatusUnspecified, err
	}
	e.emit(finalizedEvent(proposal, requiredQuorum))
	return proposal.Status, nil
}

// Execute applies the type-specific side effect of a passed proposal once its
// execution delay has elapsed, then marks it Executed. Re-execution fails
// with ErrProposalNotPassed.
func (e *Engine) Execute(proposalID uint64) error {
	if err := e.ready(); err != nil {
		return err
	}
	proposal, err := e.loadProposal(proposalID)
	if err != nil {
		return err
	}
	if proposal.Status != ProposalStatusPassed {
		return ErrProposalNotPassed
	}
	if e.now() < proposal.ExecutionTime {
		return ErrExecutionDelayNotMet
	}
	if exec, ok := e.executors[proposal.Type]; ok {
		if err := exec(proposal.Clone()); err != nil {
			return fmt.Errorf("governance: execute proposal %d: %w", proposalID, err)
		}
	}
	proposal.Status = ProposalStatusExecuted
	if err := e.state.ProposalPut(proposal); err != nil {
		return err
	}
	e.emit(executedEvent(proposal))
	return nil
}

// Proposal returns a proposal by identifier without mutating state.
func (e *Engine) Proposal(proposalID uint64) (*Proposal, error) {
	if e == nil || e.state == nil {
		return nil, errStateNotConfigured
	}
	proposal, err := e.loadProposal(proposalID)
	if err != nil {
		return nil, err
	}
	return proposal.Clone(), nil
}
