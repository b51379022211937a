package extract

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"droscher.com/BeerImporter/pkg/coerce"
	"droscher.com/BeerImporter/pkg/document"
	"droscher.com/BeerImporter/pkg/model"
)

var ErrMissingIdentifier = errors.New("missing identifier")

// FieldError reports a document entry whose required identifier could not be read.
type FieldError struct {
	Entry int
	Kind  model.Kind
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("entry %d: %s %s: %s", e.Entry, e.Kind, e.Field, ErrMissingIdentifier)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingIdentifier
}

// Records holds the rows of one document, one slice per entity kind, in document order.
type Records struct {
	Categories   []model.Category
	Styles       []model.Style
	Glassware    []model.Glassware
	Availability []model.Availability
	Beers        []model.Beer
}

// Count returns the number of rows extracted for kind.
func (r *Records) Count(kind model.Kind) int {
	switch kind {
	case model.KindCategory:
		return len(r.Categories)
	case model.KindStyle:
		return len(r.Styles)
	case model.KindGlassware:
		return len(r.Glassware)
	case model.KindAvailability:
		return len(r.Availability)
	case model.KindBeer:
		return len(r.Beers)
	default:
		return 0
	}
}

type Extractor struct {
	logger *zap.Logger
}

func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract maps every entry of doc to rows. It does not deduplicate: the same category or
// style embedded in many beers is emitted once per beer and left to the store to collapse.
func (e *Extractor) Extract(doc *document.Document) (*Records, error) {
	records := &Records{Beers: make([]model.Beer, 0, len(doc.Entries))}

	for index := range doc.Entries {
		if err := e.extractEntry(index, &doc.Entries[index], records); err != nil {
			return nil, err
		}
	}

	return records, nil
}

func (e *Extractor) extractEntry(index int, entry *document.Entry, records *Records) error {
	if entry.Style != nil {
		if entry.Style.Category != nil {
			category, err := categoryRow(index, entry.Style.Category)
			if err != nil {
				return err
			}

			records.Categories = append(records.Categories, category)
		}

		style, err := styleRow(index, entry.Style)
		if err != nil {
			return err
		}

		records.Styles = append(records.Styles, style)
	}

	if entry.Glass != nil {
		id, ok := coerce.Key(entry.Glass.ID)
		if !ok {
			return &FieldError{Entry: index, Kind: model.KindGlassware, Field: "id"}
		}

		records.Glassware = append(records.Glassware, model.Glassware{
			ID:         id,
			Name:       coerce.Text(entry.Glass.Name),
			CreateDate: coerce.Timestamp(entry.Glass.CreateDate),
		})
	}

	if entry.Available != nil {
		id, ok := coerce.Key(entry.Available.ID)
		if !ok {
			return &FieldError{Entry: index, Kind: model.KindAvailability, Field: "id"}
		}

		records.Availability = append(records.Availability, model.Availability{
			ID:          id,
			Name:        coerce.Text(entry.Available.Name),
			Description: coerce.Text(entry.Available.Description),
		})
	}

	beer, err := e.beerRow(index, entry)
	if err != nil {
		return err
	}

	records.Beers = append(records.Beers, beer)

	return nil
}

func categoryRow(index int, category *document.Category) (model.Category, error) {
	id, ok := coerce.Key(category.ID)
	if !ok {
		return model.Category{}, &FieldError{Entry: index, Kind: model.KindCategory, Field: "id"}
	}

	return model.Category{
		ID:         id,
		Name:       coerce.Text(category.Name),
		CreateDate: coerce.Timestamp(category.CreateDate),
	}, nil
}

func styleRow(index int, style *document.Style) (model.Style, error) {
	id, ok := coerce.Key(style.ID)
	if !ok {
		return model.Style{}, &FieldError{Entry: index, Kind: model.KindStyle, Field: "id"}
	}

	return model.Style{
		ID:          id,
		CategoryID:  coerce.Integer(style.CategoryID),
		Name:        coerce.Text(style.Name),
		ShortName:   coerce.Text(style.ShortName),
		Description: coerce.Text(style.Description),
		IBUMin:      coerce.Number(style.IBUMin),
		IBUMax:      coerce.Number(style.IBUMax),
		ABVMin:      coerce.Number(style.ABVMin),
		ABVMax:      coerce.Number(style.ABVMax),
		SRMMin:      coerce.Number(style.SRMMin),
		SRMMax:      coerce.Number(style.SRMMax),
		OGMin:       coerce.Number(style.OGMin),
		FGMin:       coerce.Number(style.FGMin),
		FGMax:       coerce.Number(style.FGMax),
		CreateDate:  coerce.Timestamp(style.CreateDate),
		UpdateDate:  coerce.Timestamp(style.UpdateDate),
	}, nil
}

func (e *Extractor) beerRow(index int, entry *document.Entry) (model.Beer, error) {
	id, ok := coerce.Identifier(entry.ID)
	if !ok {
		return model.Beer{}, &FieldError{Entry: index, Kind: model.KindBeer, Field: "id"}
	}

	srm := coerce.NumericOrNamed(entry.SRM)
	if srm == nil && entry.SRM.Present() {
		e.logger.Debug("srm is not numeric, storing null",
			zap.String("beer_id", id), zap.ByteString("srm", entry.SRM.Raw()))
	}

	return model.Beer{
		ID:            id,
		Name:          coerce.Text(entry.Name),
		NameDisplay:   coerce.Text(entry.NameDisplay),
		Description:   coerce.Text(entry.Description),
		ABV:           coerce.Number(entry.ABV),
		IBU:           coerce.Number(entry.IBU),
		SRM:           srm,
		StyleID:       coerce.Integer(entry.StyleID),
		AvailableID:   coerce.Integer(entry.AvailableID),
		GlasswareID:   coerce.Integer(entry.GlasswareID),
		IsOrganic:     coerce.Flag(entry.IsOrganic),
		IsRetired:     coerce.Flag(entry.IsRetired),
		Labels:        coerce.Serialized(entry.Labels),
		Status:        coerce.Text(entry.Status),
		StatusDisplay: coerce.Text(entry.StatusDisplay),
		CreateDate:    coerce.Timestamp(entry.CreateDate),
		UpdateDate:    coerce.Timestamp(entry.UpdateDate),
	}, nil
}
