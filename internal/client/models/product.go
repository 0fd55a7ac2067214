package models

import "encoding/json"

// Product is a product tracked by a user. LastChecked is kept as the
// backend sends it; backends differ in the timestamp layout they use.
type Product struct {
	ID          int64   `json:"id"`
	Article     string  `json:"article"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	UserID      int64   `json:"user_id"`
	LastChecked string  `json:"last_checked"`
}

// TrackProductData is the request body for starting to track an article.
// Name and Price are optional hints; the backend may fill them itself.
type TrackProductData struct {
	Article string   `json:"article"`
	Name    string   `json:"name,omitempty"`
	Price   *float64 `json:"price,omitempty"`
	UserID  int64    `json:"user_id"`
}

// ProductAnalysis is the result of the product analysis endpoint.
// SalesData and PositionData are passed through untouched.
type ProductAnalysis struct {
	Article         string          `json:"article"`
	Name            string          `json:"name"`
	Brand           string          `json:"brand,omitempty"`
	Price           float64         `json:"price"`
	Rating          *float64        `json:"rating,omitempty"`
	ReviewsCount    *int            `json:"reviews_count,omitempty"`
	SalesData       json.RawMessage `json:"sales_data,omitempty"`
	PositionData    json.RawMessage `json:"position_data,omitempty"`
	Charts          []string        `json:"charts,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
}
