// Package document decodes the JSON files of the beer corpus. Every scalar is kept as a Value
// so that numbers written as strings, nested objects in place of scalars and missing keys all
// survive decoding and are resolved later by the coercers.
package document

import (
	"encoding/json"
	"fmt"
)

type Category struct {
	ID         Value `json:"id"`
	Name       Value `json:"name"`
	CreateDate Value `json:"createDate"`
}

type Style struct {
	ID          Value     `json:"id"`
	CategoryID  Value     `json:"categoryId"`
	Category    *Category `json:"category"`
	Name        Value     `json:"name"`
	ShortName   Value     `json:"shortName"`
	Description Value     `json:"description"`
	IBUMin      Value     `json:"ibuMin"`
	IBUMax      Value     `json:"ibuMax"`
	ABVMin      Value     `json:"abvMin"`
	ABVMax      Value     `json:"abvMax"`
	SRMMin      Value     `json:"srmMin"`
	SRMMax      Value     `json:"srmMax"`
	OGMin       Value     `json:"ogMin"`
	FGMin       Value     `json:"fgMin"`
	FGMax       Value     `json:"fgMax"`
	CreateDate  Value     `json:"createDate"`
	UpdateDate  Value     `json:"updateDate"`
}

type Glass struct {
	ID         Value `json:"id"`
	Name       Value `json:"name"`
	CreateDate Value `json:"createDate"`
}

type Available struct {
	ID          Value `json:"id"`
	Name        Value `json:"name"`
	Description Value `json:"description"`
}

// Entry is one beer of a document together with whatever taxonomy objects it embeds.
type Entry struct {
	ID            Value      `json:"id"`
	Name          Value      `json:"name"`
	NameDisplay   Value      `json:"nameDisplay"`
	Description   Value      `json:"description"`
	ABV           Value      `json:"abv"`
	IBU           Value      `json:"ibu"`
	SRM           Value      `json:"srm"`
	StyleID       Value      `json:"styleId"`
	AvailableID   Value      `json:"availableId"`
	GlasswareID   Value      `json:"glasswareId"`
	IsOrganic     Value      `json:"isOrganic"`
	IsRetired     Value      `json:"isRetired"`
	Labels        Value      `json:"labels"`
	Status        Value      `json:"status"`
	StatusDisplay Value      `json:"statusDisplay"`
	CreateDate    Value      `json:"createDate"`
	UpdateDate    Value      `json:"updateDate"`
	Style         *Style     `json:"style"`
	Glass         *Glass     `json:"glass"`
	Available     *Available `json:"available"`
}

type Document struct {
	Entries []Entry
}

// Parse decodes one file. The entries are read from the top-level field named dataField;
// a document without that field, or with it set to null, has no entries.
func Parse(data []byte, dataField string) (*Document, error) {
	var top map[string]json.RawMessage

	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	rawEntries, found := top[dataField]
	if !found {
		return &Document{}, nil
	}

	var entries []Entry

	if err := json.Unmarshal(rawEntries, &entries); err != nil {
		return nil, fmt.Errorf("decoding %q entries: %w", dataField, err)
	}

	return &Document{Entries: entries}, nil
}
