package repository

import (
	"context"

	"droscher.com/BeerImporter/pkg/model"
)

// Store is the sink of an import. Every Insert method adds the rows whose id is not yet
// present and leaves existing rows untouched. An empty slice is a no-op.
type Store interface {
	// Transaction runs fn against a Store bound to one database transaction. The transaction
	// commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(Store) error) error

	InsertCategories(ctx context.Context, categories []model.Category) error
	InsertStyles(ctx context.Context, styles []model.Style) error
	InsertGlassware(ctx context.Context, glassware []model.Glassware) error
	InsertAvailability(ctx context.Context, availability []model.Availability) error
	InsertBeers(ctx context.Context, beers []model.Beer) error
}

var _ Store = (*Repository)(nil)
