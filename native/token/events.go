package token

import (
	"encoding/hex"
	"math/big"

	"iamaichain/core/events"
	"iamaichain/core/types"
)

const (
	// EventTypeInitialized is emitted when the token ledger is created.
	EventTypeInitialized = "token.initialized"
	// EventTypeMinted is emitted when new supply enters circulation.
	EventTypeMinted = "token.minted"
	// EventTypeTransfer is emitted for every fee-bearing transfer.
	EventTypeTransfer = "token.transfer"
	// EventTypeBurned is emitted when supply leaves circulation.
	EventTypeBurned = "token.burned"
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

func initializedEvent(info *TokenInfo) events.Event {
	return WrapEvent(&types.Event{
		Type: EventTypeInitialized,
		Attributes: map[string]string{
			"mint":        hexAddr(info.Mint),
			"symbol":      info.Symbol,
			"totalSupply": info.TotalSupply.String(),
			"feeBps":      big.NewInt(int64(info.FeeBps)).String(),
		},
	})
}

func mintedEvent(info *TokenInfo, to [20]byte, amount *big.Int) events.Event {
	return WrapEvent(&types.Event{
		Type: EventTypeMinted,
		Attributes: map[string]string{
			"mint":        hexAddr(info.Mint),
			"to":          hexAddr(to),
			"amount":      amount.String(),
			"circulating": info.CirculatingSupply.String(),
		},
	})
}

func transferEvent(info *TokenInfo, from, to [20]byte, amount, fee *big.Int) events.Event {
	return WrapEvent(&types.Event{
		Type: EventTypeTransfer,
		Attributes: map[string]string{
			"mint":   hexAddr(info.Mint),
			"from":   hexAddr(from),
			"to":     hexAddr(to),
			"amount": amount.String(),
			"fee":    fee.String(),
		},
	})
}

func burnedEvent(info *TokenInfo, from [20]byte, amount *big.Int) events.Event {
	return WrapEvent(&types.Event{
		Type: EventTypeBurned,
		Attributes: map[string]string{
			"mint":        hexAddr(info.Mint),
			"from":        hexAddr(from),
			"amount":      amount.String(),
			"circulating": info.CirculatingSupply.String(),
		},
	})
}
