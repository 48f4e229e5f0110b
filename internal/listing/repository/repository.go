package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"gatorkeys/internal/listing"
	models "gatorkeys/internal/listing/model"
	appErrors "gatorkeys/pkg/errors"
	"gatorkeys/pkg/logger"
)

type ListingRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewListingRepository(db *bun.DB, logger logger.Logger) *ListingRepository {
	return &ListingRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *ListingRepository) CreateListing(ctx context.Context, l *models.Listing) error {

	_, err := r.db.NewInsert().Model(l).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "listingRepo.CreateListing.Insert: ")
	}
	return nil
}

func (r *ListingRepository) GetListingByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {

	l := new(models.Listing)
	err := r.db.NewSelect().Model(l).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrListingNotFound
		}
		return nil, errors.Wrap(err, "listingRepo.GetListingByID.Scan: ")
	}
	return l, nil
}

func (r *ListingRepository) ListListings(ctx context.Context, f listing.Filter) ([]models.Listing, error) {
	var listings []models.Listing
	q := r.db.NewSelect().Model(&listings).Order("created_at DESC")
	if f.MaxRent > 0 {
		q = q.Where("rent <= ?", f.MaxRent)
	}
	if f.MinBedrooms > 0 {
		q = q.Where("bedrooms >= ?", f.MinBedrooms)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, errors.Wrap(err, "listingRepo.ListListings.Scan: ")
	}
	return listings, nil
}

func (r *ListingRepository) UpdateListing(ctx context.Context, l *models.Listing) error {
	res, err := r.db.NewUpdate().Model(l).
		Column("title", "description", "address", "rent", "bedrooms", "bathrooms", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "listingRepo.UpdateListing.Update: ")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) DeleteListing(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().Model((*models.Listing)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "listingRepo.DeleteListing.Delete: ")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return appErrors.ErrListingNotFound
	}
	return nil
}
