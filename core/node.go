package core

import (
	"fmt"
	"log/slog"
	"math/big"
	"strconv"

	"iamaichain/config"
	"iamaichain/core/events"
	"iamaichain/core/ledger"
	"iamaichain/core/state"
	"iamaichain/core/types"
	"iamaichain/native/common"
	"iamaichain/native/governance"
	"iamaichain/native/market"
	"iamaichain/native/staking"
	"iamaichain/native/token"
	"iamaichain/observability/metrics"
	"iamaichain/storage"
)

// Node wires the storage layer, the account ledger, and the native engines
// into one process. Every engine shares the same state manager and pause
// switchboard, and all module events flow through the node for logging and
// metrics.
type Node struct {
	db      storage.Database
	state   *state.Manager
	bank    *ledger.AccountLedger
	logger  *slog.Logger
	metrics *metrics.EconomyMetrics

	Token       *token.Engine
	Governance  *governance.Engine
	Market      *market.Engine
	Staking     *staking.Engine
	Switchboard *common.Switchboard

	mint      [20]byte
	authority [20]byte
	treasury  [20]byte
}

// NewNode constructs a node over the database and applies the genesis
// parameters when the ledger is fresh.
func NewNode(db storage.Database, genesis config.Genesis, logger *slog.Logger) (*Node, error) {
	if logger == nil {
		logger = slog.Default()
	}
	mint, err := config.ParseAddress(genesis.Token.Mint)
	if err != nil {
		return nil, err
	}
	authority, err := config.ParseAddress(genesis.Token.Authority)
	if err != nil {
		return nil, err
	}
	treasury, err := config.ParseAddress(genesis.Token.Treasury)
	if err != nil {
		return nil, err
	}
	vault, err := config.ParseAddress(genesis.Staking.Vault)
	if err != nil {
		return nil, err
	}
	totalSupply, err := config.ParseAmount(genesis.Token.TotalSupply)
	if err != nil {
		return nil, err
	}
	minProposal, err := config.ParseAmount(genesis.Governance.MinTokensForProposal)
	if err != nil {
		return nil, err
	}

	manager := state.NewManager(db)
	bank := ledger.NewAccountLedger(mint, authority)
	bank.SetState(manager)
	board := common.NewSwitchboard()

	node := &Node{
		db:          db,
		state:       manager,
		bank:        bank,
		logger:      logger,
		metrics:     metrics.Economy(),
		Switchboard: board,
		mint:        mint,
		authority:   authority,
		treasury:    treasury,
	}

	node.Token = token.NewEngine()
	node.Token.SetState(manager)
	node.Token.SetLedger(bank)
	node.Token.SetPauses(board)
	node.Token.SetEmitter(node)

	node.Governance = governance.NewEngine()
	node.Governance.SetState(manager)
	node.Governance.SetBalanceView(bank)
	node.Governance.SetSupplyView(node)
	node.Governance.SetPauses(board)
	node.Governance.SetEmitter(node)
	node.Governance.SetExecutor(governance.ProposalTypeTechnical, node.executeTechnical)
	node.Governance.SetExecutor(governance.ProposalTypeTreasury, node.executeTreasury)

	node.Market = market.NewEngine()
	node.Market.SetState(manager)
	node.Market.SetLedger(bank)
	node.Market.SetPauses(board)
	node.Market.SetEmitter(node)

	node.Staking = staking.NewEngine()
	node.Staking.SetState(manager)
	node.Staking.SetLedger(bank)
	node.Staking.SetPauses(board)
	node.Staking.SetEmitter(node)

	if err := node.applyGenesis(genesis, totalSupply, minProposal, vault); err != nil {
		return nil, err
	}
	return node, nil
}

// Ledger exposes the account ledger for callers outside the engines.
func (n *Node) Ledger() *ledger.AccountLedger { return n.bank }

// State exposes the state manager for read paths.
func (n *Node) State() *state.Manager { return n.state }

func (n *Node) applyGenesis(genesis config.Genesis, totalSupply, minProposal *big.Int, vault [20]byte) error {
	if _, ok, err := n.state.TokenGet(n.mint); err != nil {
		return err
	} else if ok {
		return nil
	}
	n.logger.Info("applying genesis", "symbol", genesis.Token.Symbol, "totalSupply", totalSupply.String())

	if _, err := n.Token.Initialize(n.mint, n.authority, n.treasury, genesis.Token.Name, genesis.Token.Symbol, genesis.Token.Decimals, totalSupply); err != nil {
		return fmt.Errorf("genesis token: %w", err)
	}
	if _, err := n.Governance.Initialize(n.authority, n.mint, minProposal, genesis.Governance.QuorumPct, genesis.Governance.ExecutionDelay); err != nil {
		return fmt.Errorf("genesis governance: %w", err)
	}
	if _, err := n.Market.Initialize(n.authority, n.mint, n.treasury, genesis.Market.RoyaltyBps); err != nil {
		return fmt.Errorf("genesis market: %w", err)
	}
	if _, err := n.Staking.Initialize(n.authority, n.mint, vault, genesis.Staking.EarlyPenaltyBps); err != nil {
		return fmt.Errorf("genesis staking: %w", err)
	}
	return nil
}

// TotalSupply implements the governance supply view with the live token
// record's total supply, so quorum follows any change to the authorized cap.
func (n *Node) TotalSupply(mint [20]byte) (*big.Int, error) {
	return n.state.TotalSupply(mint)
}

// Emit implements events.Emitter. Module events are logged and folded into
// the process metrics.
func (n *Node) Emit(evt events.Event) {
	if evt == nil {
		return
	}
	attrs := eventAttributes(evt)
	args := make([]any, 0, len(attrs)*2)
	for k, v := range attrs {
		args = append(args, k, v)
	}
	n.logger.Info(evt.EventType(), args...)
	n.observe(evt.EventType(), attrs)
}

func eventAttributes(evt events.Event) map[string]string {
	carrier, ok := evt.(interface{ Event() *types.Event })
	if !ok {
		return nil
	}
	raw := carrier.Event()
	if raw == nil {
		return nil
	}
	return raw.Attributes
}

func attrFloat(attrs map[string]string, key string) float64 {
	value, err := strconv.ParseFloat(attrs[key], 64)
	if err != nil {
		return 0
	}
	return value
}

func (n *Node) observe(eventType string, attrs map[string]string) {
	switch eventType {
	case token.EventTypeTransfer:
		n.metrics.ObserveTransfer(attrFloat(attrs, "fee"))
	case token.EventTypeMinted, token.EventTypeBurned:
		n.metrics.SetCirculatingSupply(attrFloat(attrs, "circulating"))
	case governance.EventTypeProposalCreated:
		n.metrics.ObserveProposal(attrs["type"])
	case governance.EventTypeVoteCast:
		n.metrics.ObserveVote()
	case governance.EventTypeProposalExecuted:
		n.metrics.ObserveExecution("executed")
	case market.EventTypeModelPurchased:
		n.metrics.ObserveSale(attrFloat(attrs, "price"))
	case staking.EventTypeRewardsClaimed:
		n.metrics.ObserveRewardsClaimed(attrFloat(attrs, "amount"))
	case staking.EventTypeStaked, staking.EventTypeUnstaked:
		if pool, ok, err := n.state.StakingPoolGet(); err == nil && ok {
			total, _ := new(big.Float).SetInt(pool.TotalStaked).Float64()
			n.metrics.SetTotalStaked(total)
		}
	}
}
