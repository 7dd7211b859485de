// Package favourites provides database operations for favourite books.
//
// Every method reports storage errors to the caller; the read fail-soft
// policy lives in internal/favorites.RelationalBackend.
//
// # Usage
//
//	repo := favourites.NewRepository(db.DB)
//	err := repo.Upsert(ctx, entities.ToRow(book))
//	rows, err := repo.GetAll(ctx)
package favourites

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// Repository handles all favourites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert inserts the row or replaces every column of an existing row with the
// same id.
func (r *Repository) Upsert(ctx context.Context, row entities.FavoriteRow) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}

// GetAll returns every favourite ordered by title, then id.
func (r *Repository) GetAll(ctx context.Context) ([]entities.FavoriteRow, error) {
	var rows []entities.FavoriteRow
	err := r.db.WithContext(ctx).
		Order("title ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// GetByID retrieves a favourite by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*entities.FavoriteRow, error) {
	var row entities.FavoriteRow
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Exists reports whether a favourite with the given id is stored.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	_, err := r.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a favourite. Deleting a missing id is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entities.FavoriteRow{}).Error
}

// DeleteAll removes every favourite.
func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entities.FavoriteRow{}).Error
}

// Count returns the number of stored favourites.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.FavoriteRow{}).Count(&count).Error
	return count, err
}
