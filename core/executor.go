package core

import (
	"fmt"
	"strings"

	"iamaichain/config"
	"iamaichain/native/common"
	"iamaichain/native/governance"
)

// Passed proposals carry their side effect as a directive on the first line
// of the description. Technical proposals operate the pause switchboard,
// treasury proposals disburse from the treasury account. A proposal without
// a directive executes as a pure on-ledger record.
//
//	pause marketplace
//	resume marketplace
//	disburse 0x<20-byte-hex> <amount>

func directive(p *governance.Proposal) []string {
	line := p.Description
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	return strings.Fields(strings.TrimSpace(line))
}

func validModule(name string) bool {
	switch name {
	case common.ModuleToken, common.ModuleGovernance, common.ModuleMarketplace, common.ModuleStaking:
		return true
	default:
		return false
	}
}

func (n *Node) executeTechnical(p *governance.Proposal) error {
	fields := directive(p)
	if len(fields) == 0 {
		return nil
	}
	if len(fields) != 2 || !validModule(fields[1]) {
		return fmt.Errorf("technical proposal %d: unknown directive %q", p.ID, strings.Join(fields, " "))
	}
	switch fields[0] {
	case "pause":
		n.Switchboard.SetPaused(fields[1], true)
	case "resume":
		n.Switchboard.SetPaused(fields[1], false)
	default:
		return fmt.Errorf("technical proposal %d: unknown directive %q", p.ID, fields[0])
	}
	n.logger.Info("governance switchboard update", "proposal", p.ID, "action", fields[0], "module", fields[1])
	return nil
}

func (n *Node) executeTreasury(p *governance.Proposal) error {
	fields := directive(p)
	if len(fields) == 0 {
		return nil
	}
	if len(fields) != 3 || fields[0] != "disburse" {
		return fmt.Errorf("treasury proposal %d: unknown directive %q", p.ID, strings.Join(fields, " "))
	}
	recipient, err := config.ParseAddress(fields[1])
	if err != nil {
		return fmt.Errorf("treasury proposal %d: %w", p.ID, err)
	}
	amount, err := config.ParseAmount(fields[2])
	if err != nil {
		return fmt.Errorf("treasury proposal %d: %w", p.ID, err)
	}
	// The treasury is protocol-owned, so governance execution supplies its
	// address as the transfer authority.
	if err := n.bank.Transfer(n.treasury, recipient, n.treasury, amount); err != nil {
		return fmt.Errorf("treasury proposal %d: %w", p.ID, err)
	}
	n.logger.Info("treasury disbursement", "proposal", p.ID, "recipient", fields[1], "amount", amount.String())
	return nil
}
