package common

import "errors"

// ErrModulePaused is returned by every engine operation while its module is
// switched off.
var ErrModulePaused = errors.New("module paused")

// Module identifiers accepted by the pause switchboard.
const (
	ModuleToken       = "token"
	ModuleGovernance  = "governance"
	ModuleMarketplace = "marketplace"
	ModuleStaking     = "staking"
)

// PauseView reports whether a module is currently paused.
type PauseView interface {
	IsPaused(module string) bool
}

// Guard rejects the operation when the module is paused. A nil view or empty
// module name means the guard is disabled.
func Guard(p PauseView, module string) error {
	if p == nil || module == "" {
		return nil
	}
	if p.IsPaused(module) {
		return ErrModulePaused
	}
	return nil
}
