package listing

import (
	"context"

	"github.com/google/uuid"
)

type ListingUsecase interface {
	Create(ctx context.Context, cmd CreateListingCommand) (*ListingDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ListingDTO, error)
	List(ctx context.Context, f Filter) ([]ListingDTO, error)

	// Update and Delete are owner-only
	Update(ctx context.Context, cmd UpdateListingCommand) (*ListingDTO, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
