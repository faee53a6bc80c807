package domain

// Photo belongs to exactly one user. AssetID is nil for legacy photos
// that predate the remote asset store.
type Photo struct {
	ID      int     `json:"id" db:"id"`
	UserID  int     `json:"user_id" db:"user_id"`
	URL     string  `json:"url" db:"url"`
	AssetID *string `json:"asset_id" db:"asset_id"`
	IsMain  bool    `json:"is_main" db:"is_main"`
}
