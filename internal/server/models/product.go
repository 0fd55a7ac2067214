package models

// Product is a tracked article of one user. (UserID, Article) is unique.
type Product struct {
	ID          int64   `db:"id" json:"id"`
	UserID      int64   `db:"user_id" json:"user_id"`
	Article     string  `db:"article" json:"article"`
	Name        string  `db:"name" json:"name"`
	Price       float64 `db:"price" json:"price"`
	LastChecked string  `db:"last_checked" json:"last_checked"`
}

// Analysis is the product analysis answered for a tracked article.
type Analysis struct {
	Article         string   `json:"article"`
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	Recommendations []string `json:"recommendations,omitempty"`
}
