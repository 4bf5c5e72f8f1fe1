package pipeline

import (
	"strings"

	"pricelist/internal"
	"pricelist/internal/util"
)

// Synonym groups in priority order. Keys are compared after util.NormalizeColumn.
var (
	NameColumns   = []string{"название", "продукт", "товар", "наименование"}
	PriceColumns  = []string{"цена", "розница"}
	WeightColumns = []string{"фасовка", "масса", "вес"}
)

// resolveColumn returns the value of the first synonym present as a column,
// even when that cell is empty.
func resolveColumn(values map[string]string, group []string) (string, bool) {
	for _, column := range group {
		if value, ok := values[column]; ok {
			return value, true
		}
	}
	return "", false
}

func requireColumn(values map[string]string, group []string, missing internal.SkipReason) (string, internal.SkipReason) {
	value, ok := resolveColumn(values, group)
	if !ok || strings.TrimSpace(value) == "" {
		return "", missing
	}
	return value, internal.SkipNone
}

// Normalize turns a raw row into a PricedItem. A non-empty SkipReason means
// the row must be dropped.
func Normalize(rec internal.RawRecord) (internal.PricedItem, internal.SkipReason) {
	name, reason := requireColumn(rec.Values, NameColumns, internal.SkipMissingName)
	if reason != internal.SkipNone {
		return internal.PricedItem{}, reason
	}
	rawPrice, reason := requireColumn(rec.Values, PriceColumns, internal.SkipMissingPrice)
	if reason != internal.SkipNone {
		return internal.PricedItem{}, reason
	}
	rawWeight, reason := requireColumn(rec.Values, WeightColumns, internal.SkipMissingWeight)
	if reason != internal.SkipNone {
		return internal.PricedItem{}, reason
	}

	price, err := util.ParseDecimal(rawPrice)
	if err != nil {
		return internal.PricedItem{}, internal.SkipBadPrice
	}
	weight, err := util.ParseDecimal(rawWeight)
	if err != nil {
		return internal.PricedItem{}, internal.SkipBadWeight
	}
	if weight <= 0 {
		return internal.PricedItem{}, internal.SkipNonPositiveWeight
	}

	perKg := price / weight
	if !util.IsFinite(perKg) {
		return internal.PricedItem{}, internal.SkipNonFinite
	}

	return internal.PricedItem{
		Name:       strings.TrimSpace(name),
		UnitPrice:  price,
		Weight:     weight,
		SourceFile: rec.File,
		PricePerKg: perKg,
	}, internal.SkipNone
}
