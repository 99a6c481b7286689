package feature

import "time"

// Raw field names of one order-line record. They double as the prefixes of
// the derived feature columns, so they must stay in sync with the persisted
// schema of any fitted pipeline.
const (
	FieldPersonType  = "PersonType"
	FieldOrderQty    = "OrderQty"
	FieldProductName = "Name"
	FieldProductLine = "ProductLine"
	FieldTerritory   = "Name_territory"
	FieldCountryCode = "CountryRegionCode"
	FieldGroup       = "Group"
	FieldOrderDate   = "OrderDate"
)

// Derived column names.
const (
	ColumnYear          = "Year"
	ColumnMonth         = "Month"
	ColumnDay           = "Day"
	ColumnQtyBoxCox     = "OrderQty_boxcox"
	ColumnTargetEncoded = "Name_target_encoded"
)

// ProductLineFallback is the sentinel category substituted for a missing
// product line before encoding. It is part of the fitted vocabulary, so the
// sentinel one-hot-encodes like any observed category.
const ProductLineFallback = "Unidentified"

// EncodedFields lists the categorical fields expanded into indicator columns,
// in the order they were fit. The order is part of the frozen schema.
var EncodedFields = []string{
	FieldPersonType,
	FieldProductLine,
	FieldTerritory,
	FieldCountryCode,
	FieldGroup,
}

// RawRecord is one order line as received from the caller. Optional fields
// are pointers; nil means the field was absent from the input.
type RawRecord struct {
	PersonType  string
	OrderQty    int
	ProductName string
	ProductLine *string
	Territory   string
	CountryCode string
	Group       string
	OrderDate   *time.Time
}

// encodedValue returns the record's value for one of the encoded categorical
// fields, after product-line imputation.
func (r *RawRecord) encodedValue(field string) string {
	switch field {
	case FieldPersonType:
		return r.PersonType
	case FieldProductLine:
		if r.ProductLine == nil {
			return ProductLineFallback
		}
		return *r.ProductLine
	case FieldTerritory:
		return r.Territory
	case FieldCountryCode:
		return r.CountryCode
	case FieldGroup:
		return r.Group
	default:
		return ""
	}
}
