package models

import (
	"time"

	"github.com/google/uuid"
)

type Listing struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	OwnerID uuid.UUID `bun:",notnull,type:uuid"`

	Title       string `bun:",notnull"`
	Description string `bun:",nullzero"`
	Address     string `bun:",nullzero"`

	// Rent in whole dollars per month
	Rent      int     `bun:",notnull"`
	Bedrooms  int     `bun:",notnull,default:1"`
	Bathrooms float64 `bun:",notnull,default:1"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
