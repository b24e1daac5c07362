package market

import (
	"math/big"
	"strings"
	"time"

	"iamaichain/core/events"
	"iamaichain/core/ledger"
	"iamaichain/native/common"
)

type engineState interface {
	MarketplaceGet() (*Marketplace, bool, error)
	MarketplacePut(m *Marketplace) error
	MarketNextListingID() (uint64, error)
	ListingGet(id uint64) (*ModelListing, bool, error)
	ListingPut(l *ModelListing) error
	PurchaseGet(modelID uint64, buyer [20]byte) (*PurchaseRecord, bool, error)
	PurchasePut(p *PurchaseRecord) error
	ReviewGet(modelID uint64, reviewer [20]byte) (*ModelReview, bool, error)
	ReviewPut(r *ModelReview) error
}

// Engine owns listings, purchases, and reviews. Payments are split between
// the marketplace treasury and the listing creator through the ledger
// capability; the engine itself never holds funds.
type Engine struct {
	state   engineState
	ledger  ledger.Ledger
	emitter events.Emitter
	pauses  common.PauseView
	nowFn   func() int64
}

// NewEngine constructs a marketplace engine with default no-op dependencies.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		nowFn:   func() int64 { return time.Now().Unix() },
	}
}

// SetState wires the engine to the state backend providing persistence helpers.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetLedger configures the value-transfer capability for purchases.
func (e *Engine) SetLedger(l ledger.Ledger) { e.ledger = l }

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
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

func (e *Engine) emit(evt events.Event) {
	if e == nil || e.emitter == nil || evt == nil {
		return
	}
	e.emitter.Emit(evt)
}

func (e *Engine) now() int64 {
	if e == nil || e.nowFn == nil {
		return time.Now().Unix()
	}
	return e.nowFn()
}

func (e *Engine) ready() error {
	if e == nil || e.state == nil {
		return errStateNotConfigured
	}
	return common.Guard(e.pauses, common.ModuleMarketplace)
}

func (e *Engine) loadMarketplace() (*Marketplace, error) {
	mp, ok, err := e.state.MarketplaceGet()
	if err != nil {
		return nil, err
	}
	if !ok || mp == nil {
		return nil, ErrNotInitialized
	}
	return mp, nil
}

func (e *Engine) loadListing(id uint64) (*ModelListing, error) {
	listing, ok, err := e.state.ListingGet(id)
	if err != nil {
		return nil, err
	}
	if !ok || listing == nil {
		return nil, ErrModelNotFound
	}
	return listing, nil
}

// Initialize creates the marketplace configuration record.
func (e *Engine) Initialize(authority, tokenMint, treasury [20]byte, royaltyBps uint32) (*Marketplace, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if royaltyBps > 10_000 {
		return nil, ErrInvalidRoyalty
	}
	if _, ok, err := e.state.MarketplaceGet(); err != nil {
		return nil, err
	} else if ok {
		return nil, ErrAlreadyInitialized
	}
	mp := &Marketplace{
		Authority:   authority,
		TokenMint:   tokenMint,
		Treasury:    treasury,
		RoyaltyBps:  royaltyBps,
		TotalVolume: big.NewInt(0),
	}
	if err := e.state.MarketplacePut(mp); err != nil {
		return nil, err
	}
	return mp.Clone(), nil
}

// ListModel registers an active listing and assigns it an identifier.
func (e *Engine) ListModel(creator [20]byte, title, description string, price *big.Int, contentHash string, modelType ModelType) (*ModelListing, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	contentHash = strings.TrimSpace(contentHash)
	if title == "" || len(title) > MaxTitleLength ||
		len(description) > MaxDescriptionLength ||
		contentHash == "" || len(contentHash) > MaxContentHashLength {
		return nil, ErrInvalidListing
	}
	if !modelType.Valid() || price == nil || price.Sign() < 0 {
		return nil, ErrInvalidListing
	}
	mp, err := e.loadMarketplace()
	if err != nil {
		return nil, err
	}
	id, err := e.state.MarketNextListingID()
	if err != nil {
		return nil, err
	}
	listing := &ModelListing{
		ID:           id,
		Creator:      creator,
		Title:        title,
		Description:  description,
		Price:        new(big.Int).Set(price),
		ContentHash:  contentHash,
		Type:         modelType,
		CreatedAt:    e.now(),
		TotalRevenue: big.NewInt(0),
		IsActive:     true,
	}
	mp.TotalModels++
	if err := e.state.ListingPut(listing); err != nil {
		return nil, err
	}
	if err := e.state.MarketplacePut(mp); err != nil {
		return nil, err
	}
	e.emit(listedEvent(listing))
	return listing.Clone(), nil
}

// PurchaseModel debits the buyer for the listing price, routes the royalty
// share to the treasury and the remainder to the creator, and grants access
// through a PurchaseRecord. The split is exact: royalty + creator amount
// equals the price. A buyer purchases a given model at most once.
func (e *Engine) PurchaseModel(buyer [20]byte, modelID uint64) (*PurchaseRecord, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if e.ledger == nil {
		return nil, errLedgerNotConfigured
	}
	mp, err := e.loadMarketplace()
	if err != nil {
		return nil, err
	}
	listing, err := e.loadListing(modelID)
	if err != nil {
		return nil, err
	}
	if !listing.IsActive {
		return nil, ErrModelNotActive
	}
	if _, ok, err := e.state.PurchaseGet(modelID, buyer); err != nil {
		return nil, err
	} else if ok {
		return nil, ErrAlreadyPurchased
	}

	price := listing.Price
	royalty := royaltyFor(price, mp.RoyaltyBps)
	creatorAmount := new(big.Int).Sub(price, royalty)

	// Both transfers and all counter updates land together; the balance is
	// checked up front so a short buyer leaves no partial effect.
	balance, err := e.ledger.BalanceOf(buyer)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(price) < 0 {
		return nil, ledger.ErrInsufficientFunds
	}
	if royalty.Sign() > 0 {
		if err := e.ledger.Transfer(buyer, mp.Treasury, buyer, royalty); err != nil {
			return nil, err
		}
	}
	if err := e.ledger.Transfer(buyer, listing.Creator, buyer, creatorAmount); err != nil {
		return nil, err
	}

	record := &PurchaseRecord{
		ModelID:     modelID,
		Buyer:       buyer,
		PricePaid:   new(big.Int).Set(price),
		PurchasedAt: e.now(),
		HasAccess:   true,
	}
	listing.SalesCount++
	listing.TotalRevenue = new(big.Int).Add(listing.TotalRevenue, price)
	mp.TotalSales++
	mp.TotalVolume = new(big.Int).Add(mp.TotalVolume, price)
	if err := e.state.PurchasePut(record); err != nil {
		return nil, err
	}
	if err := e.state.ListingPut(listing); err != nil {
		return nil, err
	}
	if err := e.state.MarketplacePut(mp); err != nil {
		return nil, err
	}
	e.emit(purchasedEvent(record, listing, royalty))
	return record.Clone(), nil
}

// RateModel records a review for a purchased model. Ratings are integers in
// [1,5]; each reviewer rates a given model once. The listing keeps the rating
// sum and count so the average stays derived.
func (e *Engine) RateModel(reviewer [20]byte, modelID uint64, rating uint8, review string) (*ModelReview, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if len(review) > MaxReviewLength {
		return nil, ErrInvalidRating
	}
	listing, err := e.loadListing(modelID)
	if err != nil {
		return nil, err
	}
	purchase, ok, err := e.state.PurchaseGet(modelID, reviewer)
	if err != nil {
		return nil, err
	}
	if !ok || purchase == nil || !purchase.HasAccess {
		return nil, ErrNoAccessToModel
	}
	if _, ok, err := e.state.ReviewGet(modelID, reviewer); err != nil {
		return nil, err
	} else if ok {
		return nil, ErrAlreadyReviewed
	}

	rec := &ModelReview{
		ModelID:   modelID,
		Reviewer:  reviewer,
		Rating:    rating,
		Review:    review,
		CreatedAt: e.now(),
	}
	listing.RatingSum += uint64(rating)
	listing.RatingCount++
	if err := e.state.ReviewPut(rec); err != nil {
		return nil, err
	}
	if err := e.state.ListingPut(listing); err != nil {
		return nil, err
	}
	e.emit(ratedEvent(rec))
	return rec.Clone(), nil
}

// UpdateModelStatus toggles a listing's availability. Only the listing
// creator may call it.
func (e *Engine) UpdateModelStatus(caller [20]byte, modelID uint64, isActive bool) error {
	if err := e.ready(); err != nil {
		return err
	}
	listing, err := e.loadListing(modelID)
	if err != nil {
		return err
	}
	if caller != listing.Creator {
		return ErrUnauthorized
	}
	listing.IsActive = isActive
	if err := e.state.ListingPut(listing); err != nil {
		return err
	}
	e.emit(statusEvent(listing))
	return nil
}

// ModelAccess reports whether the buyer holds access to the model. A missing
// purchase record reads as no access.
func (e *Engine) ModelAccess(buyer [20]byte, modelID uint64) (bool, error) {
	if e == nil || e.state == nil {
		return false, errStateNotConfigured
	}
	purchase, ok, err := e.state.PurchaseGet(modelID, buyer)
	if err != nil {
		return false, err
	}
	if !ok || purchase == nil {
		return false, nil
	}
	return purchase.HasAccess, nil
}

// Listing returns a listing by identifier without mutating state.
func (e *Engine) Listing(modelID uint64) (*ModelListing, error) {
	if e == nil || e.state == nil {
		return nil, errStateNotConfigured
	}
	listing, err := e.loadListing(modelID)
	if err != nil {
		return nil, err
	}
	return listing.Clone(), nil
}

// royaltyFor computes floor(price * bps / 10000).
func royaltyFor(price *big.Int, bps uint32) *big.Int {
	royalty := new(big.Int).Mul(price, big.NewInt(int64(bps)))
	return royalty.Div(royalty, big.NewInt(10_000))
}
