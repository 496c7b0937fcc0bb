package catalog

// Record is the reconciled, not-yet-imported representation of one catalog
// item. All fields are kept as extracted strings; numeric coercion happens
// only while building the API payload, so a bad token costs one field, not
// the record.
type Record struct {
	PartNo          string `json:"part_no"`
	SecondaryPartNo string `json:"ss_part_no"`
	Origin          string `json:"origin"`
	Description     string `json:"description"`
	Application     string `json:"application"`
	Grade           string `json:"grade"`
	MainCategory    string `json:"main_category"`
	SubCategory     string `json:"sub_category"`
	Size            string `json:"size"`
	Brand           string `json:"brand"`
	Remarks         string `json:"remarks"`
	LocationCode    string `json:"location"`
	Cost            string `json:"cost"`
	MarketPrice     string `json:"market_price"`
	PriceA          string `json:"price_a"`
	PriceB          string `json:"price_b"`
	Model           string `json:"model"`
	Quantity        string `json:"quantity"`
	ReorderLevel    string `json:"reorder_level"`
	Weight          string `json:"weight"`
	Status          string `json:"status"`
}

// Retained reports whether the record carries the minimum viable field set.
// Records without either part number are extraction noise and are dropped.
func (r Record) Retained() bool {
	return r.PartNo != "" || r.SecondaryPartNo != ""
}

// Key is the dedup key across a run. First occurrence wins; later
// duplicates are dropped silently.
func (r Record) Key() string {
	return r.PartNo + "_" + r.SecondaryPartNo
}

// Columns lists the audit-sheet column order, one per semantic field.
var Columns = []string{
	"Master Part No",
	"Part No",
	"Origin",
	"Description",
	"Application",
	"Grade",
	"Main Category",
	"Sub Category",
	"Size",
	"Brand",
	"Remarks",
	"Location",
	"Cost",
	"Market Price",
	"Price A",
	"Price B",
	"Model",
	"Quantity",
	"Order Level",
	"Weight",
	"Status",
}

// ColumnValues returns the record's fields in Columns order.
func (r Record) ColumnValues() []string {
	return []string{
		r.PartNo,
		r.SecondaryPartNo,
		r.Origin,
		r.Description,
		r.Application,
		r.Grade,
		r.MainCategory,
		r.SubCategory,
		r.Size,
		r.Brand,
		r.Remarks,
		r.LocationCode,
		r.Cost,
		r.MarketPrice,
		r.PriceA,
		r.PriceB,
		r.Model,
		r.Quantity,
		r.ReorderLevel,
		r.Weight,
		r.Status,
	}
}
