package catalog

import (
	"strconv"
	"strings"

	"github.com/ctc-parts/catalog-importer/constants"
)

// BuildPayload maps a Record to the parts API's create-payload shape.
// Empty fields are omitted so the backend's own defaults apply, and
// numeric-looking strings are coerced; a field that fails to parse is
// dropped from the payload, never a record-level error.
func BuildPayload(r Record) map[string]any {
	payload := map[string]any{
		"uom":    constants.DefaultUOM,
		"status": constants.PartStatusActive,
	}
	if r.Status != "" {
		payload["status"] = r.Status
	}

	setString(payload, "master_part_no", r.PartNo)
	partNo := r.SecondaryPartNo
	if partNo == "" {
		partNo = r.PartNo
	}
	setString(payload, "part_no", partNo)
	setString(payload, "brand_name", r.Brand)
	setString(payload, "description", r.Description)
	setString(payload, "category_name", r.MainCategory)
	setString(payload, "subcategory_name", r.SubCategory)
	setString(payload, "application_name", r.Application)
	setString(payload, "size", r.Size)
	setString(payload, "location", r.LocationCode)

	if origin, _ := constants.CanonicalizeOrigin(r.Origin); origin != "" {
		payload["origin"] = origin
	}
	if grade, _ := constants.CanonicalizeGrade(r.Grade); grade != "" {
		payload["grade"] = grade
	}

	setFloat(payload, "cost", r.Cost)
	setFloat(payload, "market_price", r.MarketPrice)
	setFloat(payload, "price_a", r.PriceA)
	setFloat(payload, "price_b", r.PriceB)
	setFloat(payload, "weight", r.Weight)
	setInt(payload, "reorder_level", r.ReorderLevel)

	if model := strings.TrimSpace(r.Model); model != "" {
		payload["models"] = []map[string]any{
			{"name": model, "qty_used": 1},
		}
	}

	return payload
}

func setString(payload map[string]any, key, value string) {
	value = strings.TrimSpace(value)
	if value != "" {
		payload[key] = value
	}
}

func setFloat(payload map[string]any, key, value string) {
	f, ok := ParseAmount(value)
	if ok {
		payload[key] = f
	}
}

func setInt(payload map[string]any, key, value string) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return
	}
	payload[key] = n
}

// ParseAmount parses a decimal amount with thousands separators stripped.
// The bool result is false for empty or malformed input.
func ParseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
