package model

// Kind identifies one of the entity tables filled by an import.
type Kind string

const (
	KindCategory     Kind = "category"
	KindStyle        Kind = "style"
	KindGlassware    Kind = "glassware"
	KindAvailability Kind = "availability"
	KindBeer         Kind = "beer"
)

// LoadOrder lists the kinds so that referenced rows are inserted before the rows pointing at them.
var LoadOrder = []Kind{KindCategory, KindStyle, KindGlassware, KindAvailability, KindBeer}

// All returns a fresh instance of every model, for schema creation in tests and tooling.
func All() []any {
	return []any{&Category{}, &Style{}, &Glassware{}, &Availability{}, &Beer{}}
}
