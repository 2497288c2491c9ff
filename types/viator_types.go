package types

// Wire types for the Viator partner API (products/search and product detail).

type ViatorSearchRequest struct {
	Filtering  ViatorFiltering  `json:"filtering"`
	Sorting    *ViatorSorting   `json:"sorting,omitempty"`
	Pagination ViatorPagination `json:"pagination"`
	Currency   string           `json:"currency"`
}

type ViatorFiltering struct {
	Destination       string               `json:"destination"`
	Tags              []int                `json:"tags,omitempty"`
	LowestPrice       *float64             `json:"lowestPrice,omitempty"`
	HighestPrice      *float64             `json:"highestPrice,omitempty"`
	Rating            *ViatorRatingRange   `json:"rating,omitempty"`
	DurationInMinutes *ViatorDurationRange `json:"durationInMinutes,omitempty"`
}

type ViatorRatingRange struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

type ViatorDurationRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type ViatorSorting struct {
	Sort  string `json:"sort"`  // DEFAULT | PRICE | TRAVELER_RATING | ITINERARY_DURATION
	Order string `json:"order"` // ASCENDING | DESCENDING
}

type ViatorPagination struct {
	Start int `json:"start"`
	Count int `json:"count"`
}

type ViatorSearchResponse struct {
	Products   []ViatorProduct `json:"products"`
	TotalCount int             `json:"totalCount"`
}

type ViatorProduct struct {
	ProductCode string          `json:"productCode"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Images      []ViatorImage   `json:"images,omitempty"`
	Reviews     *ViatorReviews  `json:"reviews,omitempty"`
	Duration    *ViatorDuration `json:"duration,omitempty"`
	Pricing     *ViatorPricing  `json:"pricing,omitempty"`
	ProductURL  string          `json:"productUrl"`
	Flags       []string        `json:"flags,omitempty"`
	Tags        []int           `json:"tags,omitempty"`
}

type ViatorImage struct {
	Caption  string               `json:"caption"`
	IsCover  bool                 `json:"isCover"`
	Variants []ViatorImageVariant `json:"variants"`
}

type ViatorImageVariant struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ViatorReviews struct {
	CombinedAverageRating float64 `json:"combinedAverageRating"`
	TotalReviews          int     `json:"totalReviews"`
}

type ViatorDuration struct {
	FixedDurationInMinutes      *int `json:"fixedDurationInMinutes,omitempty"`
	VariableDurationFromMinutes *int `json:"variableDurationFromMinutes,omitempty"`
	VariableDurationToMinutes   *int `json:"variableDurationToMinutes,omitempty"`
}

type ViatorPricing struct {
	Summary  ViatorPricingSummary `json:"summary"`
	Currency string               `json:"currency"`
}

type ViatorPricingSummary struct {
	FromPrice               float64  `json:"fromPrice"`
	FromPriceBeforeDiscount *float64 `json:"fromPriceBeforeDiscount,omitempty"`
}

type ViatorErrorResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	TrackingID string `json:"trackingId"`
}
