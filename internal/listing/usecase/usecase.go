package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"gatorkeys/internal/listing"
	models "gatorkeys/internal/listing/model"
	"gatorkeys/pkg/errors"
	"gatorkeys/pkg/logger"
)

type ListingUsecase struct {
	repo   listing.ListingRepository
	logger logger.Logger
}

func NewListingUsecase(repo listing.ListingRepository, logger logger.Logger) *ListingUsecase {
	return &ListingUsecase{repo: repo, logger: logger}
}

func (uc *ListingUsecase) Create(ctx context.Context, cmd listing.CreateListingCommand) (*listing.ListingDTO, error) {
	if strings.TrimSpace(cmd.Title) == "" || cmd.Rent < 0 {
		return nil, errors.ErrInvalidListing
	}

	l := &models.Listing{
		OwnerID:     cmd.OwnerID,
		Title:       strings.TrimSpace(cmd.Title),
		Description: cmd.Description,
		Address:     cmd.Address,
		Rent:        cmd.Rent,
		Bedrooms:    cmd.Bedrooms,
		Bathrooms:   cmd.Bathrooms,
	}
	if l.Bedrooms <= 0 {
		l.Bedrooms = 1
	}
	if l.Bathrooms <= 0 {
		l.Bathrooms = 1
	}
	if err := uc.repo.CreateListing(ctx, l); err != nil {
		uc.logger.Error("failed to create listing", "owner", cmd.OwnerID, "err", err)
		return nil, errors.Internal("failed to create listing")
	}
	return toDTO(l), nil
}

func (uc *ListingUsecase) Get(ctx context.Context, id uuid.UUID) (*listing.ListingDTO, error) {
	l, err := uc.repo.GetListingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (uc *ListingUsecase) List(ctx context.Context, f listing.Filter) ([]listing.ListingDTO, error) {
	listings, err := uc.repo.ListListings(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]listing.ListingDTO, 0, len(listings))
	for i := range listings {
		out = append(out, *toDTO(&listings[i]))
	}
	return out, nil
}

func (uc *ListingUsecase) Update(ctx context.Context, cmd listing.UpdateListingCommand) (*listing.ListingDTO, error) {
	if strings.TrimSpace(cmd.Title) == "" || cmd.Rent < 0 {
		return nil, errors.ErrInvalidListing
	}

	l, err := uc.repo.GetListingByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != cmd.OwnerID {
		return nil, errors.ErrNotListingOwner
	}

	l.Title = strings.TrimSpace(cmd.Title)
	l.Description = cmd.Description
	l.Address = cmd.Address
	l.Rent = cmd.Rent
	l.Bedrooms = cmd.Bedrooms
	l.Bathrooms = cmd.Bathrooms
	l.UpdatedAt = time.Now().UTC()

	if err := uc.repo.UpdateListing(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

func (uc *ListingUsecase) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	l, err := uc.repo.GetListingByID(ctx, id)
	if err != nil {
		return err
	}
	if l.OwnerID != ownerID {
		return errors.ErrNotListingOwner
	}
	return uc.repo.DeleteListing(ctx, id)
}

func toDTO(l *models.Listing) *listing.ListingDTO {
	return &listing.ListingDTO{
		ID:          l.ID,
		OwnerID:     l.OwnerID,
		Title:       l.Title,
		Description: l.Description,
		Address:     l.Address,
		Rent:        l.Rent,
		Bedrooms:    l.Bedrooms,
		Bathrooms:   l.Bathrooms,
		CreatedAt:   l.CreatedAt,
	}
}
