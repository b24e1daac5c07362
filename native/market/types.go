package market

import "math/big"

// Bounds on listing and review metadata.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxContentHashLength = 100
	MaxReviewLength      = 500
)

// ModelType categorises a listed model.
type ModelType uint8

const (
	ModelTypeLanguageModel ModelType = iota
	ModelTypeImageGeneration
	ModelTypeAudioProcessing
	ModelTypeDataAnalysis
	ModelTypeComputerVision
	ModelTypeOther
)

// Valid reports whether the model type is known.
func (t ModelType) Valid() bool {
	return t <= ModelTypeOther
}

// String returns the canonical lowercase type label.
func (t ModelType) String() string {
	switch t {
	case ModelTypeLanguageModel:
		return "language-model"
	case ModelTypeImageGeneration:
		return "image-generation"
	case ModelTypeAudioProcessing:
		return "audio-processing"
	case ModelTypeDataAnalysis:
		return "data-analysis"
	case ModelTypeComputerVision:
		return "computer-vision"
	case ModelTypeOther:
		return "other"
	default:
		return "unknown"
	}
}

// Marketplace is the durable configuration and aggregate accounting record.
type Marketplace struct {
	Authority   [20]byte `json:"authority"`
	TokenMint   [20]byte `json:"tokenMint"`
	Treasury    [20]byte `json:"treasury"`
	RoyaltyBps  uint32   `json:"royaltyBps"`
	TotalModels uint64   `json:"totalModels"`
	TotalSales  uint64   `json:"totalSales"`
	TotalVolume *big.Int `json:"totalVolume"`
}

// Clone returns a deep copy of the marketplace record.
func (m *Marketplace) Clone() *Marketplace {
	if m == nil {
		return nil
	}
	clone := *m
	if m.TotalVolume != nil {
		clone.TotalVolume = new(big.Int).Set(m.TotalVolume)
	}
	return &clone
}

// ModelListing is the durable record for one listed model. RatingSum and
// RatingCount are kept separately so the average is always derived, never
// stored with rounding drift.
type ModelListing struct {
	ID           uint64    `json:"id"`
	Creator      [20]byte  `json:"creator"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        *big.Int  `json:"price"`
	ContentHash  string    `json:"contentHash"`
	Type         ModelType `json:"type"`
	CreatedAt    int64     `json:"createdAt"`
	SalesCount   uint64    `json:"salesCount"`
	TotalRevenue *big.Int  `json:"totalRevenue"`
	IsActive     bool      `json:"isActive"`
	RatingSum    uint64    `json:"ratingSum"`
	RatingCount  uint64    `json:"ratingCount"`
}

// Clone returns a deep copy of the listing.
func (l *ModelListing) Clone() *ModelListing {
	if l == nil {
		return nil
	}
	clone := *l
	if l.Price != nil {
		clone.Price = new(big.Int).Set(l.Price)
	}
	if l.TotalRevenue != nil {
		clone.TotalRevenue = new(big.Int).Set(l.TotalRevenue)
	}
	return &clone
}

// PurchaseRecord is the unique access grant for one (model, buyer) pair.
// Created once and immutable aside from the access flag.
type PurchaseRecord struct {
	ModelID     uint64   `json:"modelId"`
	Buyer       [20]byte `json:"buyer"`
	PricePaid   *big.Int `json:"pricePaid"`
	PurchasedAt int64    `json:"purchasedAt"`
	HasAccess   bool     `json:"hasAccess"`
}

// Clone returns a deep copy of the purchase record.
func (p *PurchaseRecord) Clone() *PurchaseRecord {
	if p == nil {
		return nil
	}
	clone := *p
	if p.PricePaid != nil {
		clone.PricePaid = new(big.Int).Set(p.PricePaid)
	}
	return &clone
}

// ModelReview is the unique review for one (model, reviewer) pair.
type ModelReview struct {
	ModelID   uint64   `json:"modelId"`
	Reviewer  [20]byte `json:"reviewer"`
	Rating    uint8    `json:"rating"`
	Review    string   `json:"review"`
	CreatedAt int64    `json:"createdAt"`
}

// Clone returns a copy of the review.
func (r *ModelReview) Clone() *ModelReview {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}
