package models

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies a catalog resource category. Both kinds share one table
// and one pipeline; the descriptor in the catalog package carries the
// per-kind differences.
type Kind string

const (
	KindArticle Kind = "article"
	KindProduct Kind = "product"
)

// Resource represents a catalog entry of either kind. Kind-specific fields
// are nullable and only populated for the kind that owns them.
type Resource struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Kind        Kind      `json:"kind" db:"kind" gorm:"type:text;not null;uniqueIndex:idx_resources_kind_slug"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_resources_kind_slug"`
	Title       string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
	Markdown    *string   `json:"markdown,omitempty" db:"markdown" gorm:"type:text"`
	Price       *float64  `json:"price,omitempty" db:"price" gorm:"type:numeric"`
	Weight      *float64  `json:"weight,omitempty" db:"weight" gorm:"type:numeric"`
	Image       string    `json:"image" db:"image" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

func (Resource) TableName() string {
	return "resources"
}
