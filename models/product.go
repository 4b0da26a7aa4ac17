package models

import "time"

// ImportedProduct is the best-effort result of scraping a remote product page.
// Every field is optional; absent fields are omitted from the JSON response so
// the admin import form only pre-fills what was actually found.
type ImportedProduct struct {
	Title          string   `json:"title,omitempty" bson:"title,omitempty"`
	Description    string   `json:"description,omitempty" bson:"description,omitempty"`
	Images         []string `json:"images" bson:"images"`
	Price          *float64 `json:"price,omitempty" bson:"price,omitempty"`
	CompareAtPrice *float64 `json:"compareAtPrice,omitempty" bson:"compare_at_price,omitempty"`
	Currency       string   `json:"currency,omitempty" bson:"currency,omitempty"`
	Brand          string   `json:"brand,omitempty" bson:"brand,omitempty"`
	Category       string   `json:"category,omitempty" bson:"category,omitempty"`
}

// ImportRecord is the persisted snapshot of a successful import, kept so the
// admin UI can show past imports and re-open them for editing.
type ImportRecord struct {
	ID         string          `bson:"_id" json:"id"`
	UserID     string          `bson:"user_id,omitempty" json:"user_id,omitempty"`
	SourceURL  string          `bson:"source_url" json:"source_url"`
	RenderMode string          `bson:"render_mode,omitempty" json:"render_mode,omitempty"`
	Product    ImportedProduct `bson:"product" json:"product"`
	CreatedAt  time.Time       `bson:"created_at" json:"created_at"`
}
