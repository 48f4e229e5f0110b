package listing

import (
	"time"

	"github.com/google/uuid"
)

// Input commands
type CreateListingCommand struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	Address     string
	Rent        int
	Bedrooms    int
	Bathrooms   float64
}

type UpdateListingCommand struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID // must match the stored owner
	Title       string
	Description string
	Address     string
	Rent        int
	Bedrooms    int
	Bathrooms   float64
}

// Filter narrows List results; zero values mean "no constraint".
type Filter struct {
	MaxRent     int
	MinBedrooms int
}

// Output DTO
type ListingDTO struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address,omitempty"`
	Rent        int       `json:"rent"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   float64   `json:"bathrooms"`
	CreatedAt   time.Time `json:"created_at"`
}
