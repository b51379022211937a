package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"droscher.com/BeerImporter/pkg/model"
)

func (r *Repository) Transaction(ctx context.Context, fn func(Store) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{DB: tx, Logger: r.Logger, BatchSize: r.BatchSize})
	})
}

func (r *Repository) InsertCategories(ctx context.Context, categories []model.Category) error {
	return insertIgnoringConflicts(ctx, r, model.KindCategory, categories)
}

func (r *Repository) InsertStyles(ctx context.Context, styles []model.Style) error {
	return insertIgnoringConflicts(ctx, r, model.KindStyle, styles)
}

func (r *Repository) InsertGlassware(ctx context.Context, glassware []model.Glassware) error {
	return insertIgnoringConflicts(ctx, r, model.KindGlassware, glassware)
}

func (r *Repository) InsertAvailability(ctx context.Context, availability []model.Availability) error {
	return insertIgnoringConflicts(ctx, r, model.KindAvailability, availability)
}

func (r *Repository) InsertBeers(ctx context.Context, beers []model.Beer) error {
	return insertIgnoringConflicts(ctx, r, model.KindBeer, beers)
}

// insertIgnoringConflicts writes rows with INSERT ... ON CONFLICT ("id") DO NOTHING, batchSize
// rows per statement, so the first row stored under an id wins.
func insertIgnoringConflicts[T any](ctx context.Context, r *Repository, kind model.Kind, rows []T) error {
	if len(rows) == 0 {
		return nil
	}

	batchSize := r.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	result := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).CreateInBatches(&rows, batchSize)
	if result.Error != nil {
		r.Logger.Error("error inserting rows", zap.String("kind", string(kind)), zap.Int("rows", len(rows)),
			zap.String("sqlstate", SQLState(result.Error)), zap.Error(result.Error))

		return fmt.Errorf("inserting %s rows: %w", kind, result.Error)
	}

	r.Logger.Debug("inserted rows", zap.String("kind", string(kind)), zap.Int("rows", len(rows)),
		zap.Int64("new", result.RowsAffected))

	return nil
}
