package listing

import (
	"context"

	"github.com/google/uuid"

	models "gatorkeys/internal/listing/model"
)

type ListingRepository interface {
	CreateListing(ctx context.Context, l *models.Listing) error
	GetListingByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	ListListings(ctx context.Context, f Filter) ([]models.Listing, error)
	UpdateListing(ctx context.Context, l *models.Listing) error
	DeleteListing(ctx context.Context, id uuid.UUID) error
}
