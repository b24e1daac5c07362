package market

import (
	"encoding/hex"
	"math/big"
	"strconv"

	"iamaichain/core/events"
	"iamaichain/core/types"
)

const (
	// EventTypeModelListed is emitted when a new listing is admitted.
	EventTypeModelListed = "market.model.listed"
	// EventTypeModelPurchased is emitted when a purchase settles.
	EventTypeModelPurchased = "market.model.purchased"
	// EventTypeModelRated is emitted when a review is recorded.
	EventTypeModelRated = "market.model.rated"
	// EventTypeModelStatus is emitted when a listing is toggled.
	EventTypeModelStatus = "market.model.status"
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

func listedEvent(l *ModelListing) events.Event {
	return eventEnvelope{evt: &types.Event{
		Type: EventTypeModelListed,
		Attributes: map[string]string{
			"modelId": strconv.FormatUint(l.ID, 10),
			"creator": hexAddr(l.Creator),
			"price":   bigStr(l.Price),
			"type":    l.Type.String(),
		},
	}}
}

func purchasedEvent(p *PurchaseRecord, l *ModelListing, royalty *big.Int) events.Event {
	return eventEnvelope{evt: &types.Event{
		Type: EventTypeModelPurchased,
		Attributes: map[string]string{
			"modelId": strconv.FormatUint(p.ModelID, 10),
			"buyer":   hexAddr(p.Buyer),
			"creator": hexAddr(l.Creator),
			"price":   bigStr(p.PricePaid),
			"royalty": bigStr(royalty),
		},
	}}
}

func ratedEvent(r *ModelReview) events.Event {
	return eventEnvelope{evt: &types.Event{
		Type: EventTypeModelRated,
		Attributes: map[string]string{
			"modelId":  strconv.FormatUint(r.ModelID, 10),
			"reviewer": hexAddr(r.Reviewer),
			"rating":   strconv.FormatUint(uint64(r.Rating), 10),
		},
	}}
}

func statusEvent(l *ModelListing) events.Event {
	return eventEnvelope{evt: &types.Event{
		Type: EventTypeModelStatus,
		Attributes: map[string]string{
			"modelId": strconv.FormatUint(l.ID, 10),
			"active":  strconv.FormatBool(l.IsActive),
		},
	}}
}
