package state

import (
	"math/big"

	"iamaichain/native/market"
)

type storedListing struct {
	ID           uint64
	Creator      [20]byte
	Title        string
	Description  string
	Price        *big.Int
	ContentHash  string
	Type         uint8
	CreatedAt    uint64
	SalesCount   uint64
	TotalRevenue *big.Int
	IsActive     bool
	RatingSum    uint64
	RatingCount  uint64
}

type storedPurchase struct {
	ModelID     uint64
	Buyer       [20]byte
	PricePaid   *big.Int
	PurchasedAt uint64
	HasAccess   bool
}

type storedReview struct {
	ModelID   uint64
	Reviewer  [20]byte
	Rating    uint8
	Review    string
	CreatedAt uint64
}

// MarketplaceGet loads the marketplace configuration record.
func (m *Manager) MarketplaceGet() (*market.Marketplace, bool, error) {
	mp := new(market.Marketplace)
	ok, err := m.getRecord(hashKey(marketConfigKey), mp)
	if err != nil || !ok {
		return nil, false, err
	}
	return mp, true, nil
}

// MarketplacePut stores the marketplace configuration record.
func (m *Manager) MarketplacePut(mp *market.Marketplace) error {
	if mp == nil {
		return nil
	}
	return m.putRecord(hashKey(marketConfigKey), mp)
}

// MarketNextListingID increments and returns the listing sequence.
func (m *Manager) MarketNextListingID() (uint64, error) {
	return m.nextSequence(hashKey(listingSeqKey))
}

// ListingGet loads a listing by identifier.
func (m *Manager) ListingGet(id uint64) (*market.ModelListing, bool, error) {
	stored := new(storedListing)
	ok, err := m.getRecord(hashKey(listingPrefix, uint64Key(id)), stored)
	if err != nil || !ok {
		return nil, false, err
	}
	return &market.ModelListing{
		ID:           stored.ID,
		Creator:      stored.Creator,
		Title:        stored.Title,
		Description:  stored.Description,
		Price:        stored.Price,
		ContentHash:  stored.ContentHash,
		Type:         market.ModelType(stored.Type),
		CreatedAt:    int64(stored.CreatedAt),
		SalesCount:   stored.SalesCount,
		TotalRevenue: stored.TotalRevenue,
		IsActive:     stored.IsActive,
		RatingSum:    stored.RatingSum,
		RatingCount:  stored.RatingCount,
	}, true, nil
}

// ListingPut stores a listing under its identifier.
func (m *Manager) ListingPut(l *market.ModelListing) error {
	if l == nil {
		return nil
	}
	return m.putRecord(hashKey(listingPrefix, uint64Key(l.ID)), &storedListing{
		ID:           l.ID,
		Creator:      l.Creator,
		Title:        l.Title,
		Description:  l.Description,
		Price:        l.Price,
		ContentHash:  l.ContentHash,
		Type:         uint8(l.Type),
		CreatedAt:    uint64(l.CreatedAt),
		SalesCount:   l.SalesCount,
		TotalRevenue: l.TotalRevenue,
		IsActive:     l.IsActive,
		RatingSum:    l.RatingSum,
		RatingCount:  l.RatingCount,
	})
}

// PurchaseGet loads the access record for a buyer on a model.
func (m *Manager) PurchaseGet(modelID uint64, buyer [20]byte) (*market.PurchaseRecord, bool, error) {
	stored := new(storedPurchase)
	ok, err := m.getRecord(hashKey(purchasePrefix, uint64Key(modelID), buyer[:]), stored)
	if err != nil || !ok {
		return nil, false, err
	}
	return &market.PurchaseRecord{
		ModelID:     stored.ModelID,
		Buyer:       stored.Buyer,
		PricePaid:   stored.PricePaid,
		PurchasedAt: int64(stored.PurchasedAt),
		HasAccess:   stored.HasAccess,
	}, true, nil
}

// PurchasePut stores an access record under its model and buyer.
func (m *Manager) PurchasePut(p *market.PurchaseRecord) error {
	if p == nil {
		return nil
	}
	return m.putRecord(hashKey(purchasePrefix, uint64Key(p.ModelID), p.Buyer[:]), &storedPurchase{
		ModelID:     p.ModelID,
		Buyer:       p.Buyer,
		PricePaid:   p.PricePaid,
		PurchasedAt: uint64(p.PurchasedAt),
		HasAccess:   p.HasAccess,
	})
}

// ReviewGet loads the review left by a reviewer on a model.
func (m *Manager) ReviewGet(modelID uint64, reviewer [20]byte) (*market.ModelReview, bool, error) {
	stored := new(storedReview)
	ok, err := m.getRecord(hashKey(reviewPrefix, uint64Key(modelID), reviewer[:]), stored)
	if err != nil || !ok {
		return nil, false, err
	}
	return &market.ModelReview{
		ModelID:   stored.ModelID,
		Reviewer:  stored.Reviewer,
		Rating:    stored.Rating,
		Review:    stored.Review,
		CreatedAt: int64(stored.CreatedAt),
	}, true, nil
}

// ReviewPut stores a review under its model and reviewer.
func (m *Manager) ReviewPut(r *market.ModelReview) error {
	if r == nil {
		return nil
	}
	return m.putRecord(hashKey(reviewPrefix, uint64Key(r.ModelID), r.Reviewer[:]), &storedReview{
		ModelID:   r.ModelID,
		Reviewer:  r.Reviewer,
		Rating:    r.Rating,
		Review:    r.Review,
		CreatedAt: uint64(r.CreatedAt),
	})
}
