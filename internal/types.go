package internal

// PricedItem is one normalized price-list row.
type PricedItem struct {
	Name       string
	UnitPrice  float64
	Weight     float64
	SourceFile string
	PricePerKg float64
}

// RawRecord is a header-keyed row read from a price file.
type RawRecord struct {
	File   string
	Line   int
	Values map[string]string
}

type SkipReason string

const (
	SkipNone              SkipReason = ""
	SkipMissingName       SkipReason = "missing_name"
	SkipMissingPrice      SkipReason = "missing_price"
	SkipMissingWeight     SkipReason = "missing_weight"
	SkipBadPrice          SkipReason = "bad_price"
	SkipBadWeight         SkipReason = "bad_weight"
	SkipNonPositiveWeight SkipReason = "non_positive_weight"
	SkipNonFinite         SkipReason = "non_finite"
)

type SourceKind string

const (
	SourceCSV  SourceKind = "csv"
	SourceXLSX SourceKind = "xlsx"
	SourceHTML SourceKind = "html"
)
