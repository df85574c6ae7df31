package entity

// UnknownKeyword is the grouping fallback for materials without a catalog row
// (or whose row carries no substrate-family keyword).
const UnknownKeyword = "UNKNOWN"

// MaterialMaster is one row of the material-master catalog, with source values
// kept raw; rendering to presentation strings happens at lookup time.
type MaterialMaster struct {
	MaterialID      string
	Keyword         string // substrate family
	SupplierKeyword string
	Width           string // raw value, unit not included
	Length          string
	SupplierRef     string
	Description     string
	LeadTimeDays    *int // nil = not maintained
	SafetyStock     int
}

// MaterialMeta is the rendered metadata bundle a projection carries:
// width/length with unit suffix, lead time stringified or "n/a".
type MaterialMeta struct {
	Keyword         string
	SupplierKeyword string
	Width           string
	Length          string
	SupplierRef     string
	Description     string
	LeadTime        string
	SafetyStock     int
}
