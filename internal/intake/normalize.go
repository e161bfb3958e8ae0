package intake

import (
	"math"
	"strconv"
	"strings"
	"time"

	"stockroom/internal/catalog"
	"stockroom/internal/domain"
)

type coercion int

const (
	asString coercion = iota
	asNumber
	asCount
	asList
	asDate
)

// knownFields are the payload keys with a fixed slot on domain.Product.
var knownFields = map[string]coercion{
	"name":            asString,
	"brand":           asString,
	"description":     asString,
	"genderCategory":  asString,
	"category":        asString,
	"condition":       asString,
	"inventoryStatus": asString,
	"price":           asNumber,
	"originalPrice":   asNumber,
	"sellingPrice":    asNumber,
	"countInStock":    asCount,
	"sizes":           asList,
	"colors":          asList,
	"releaseDate":     asDate,
}

// Normalized is the output of Normalize.
type Normalized struct {
	Product    domain.Product
	Attributes []domain.Attribute
}

// dateLayouts are tried in order. Date-only input is taken as UTC midnight.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

const isoLayout = "2006-01-02T15:04:05.000Z"

// Normalize splits fields into a product with defaults applied and the
// attributes that have no fixed slot. It never fails: malformed numbers and
// dates are left absent for the validator to judge.
//
// Scalar keys that repeat keep their last occurrence; list keys accumulate
// across occurrences.
func Normalize(fields []Field) Normalized {
	var (
		p     domain.Product
		strs  = map[string]string{}
		nums  = map[string]*float64{}
		lists = map[string][]string{}
		attrs []domain.Attribute
	)

	for _, f := range fields {
		kind, known := knownFields[f.Key]
		if !known {
			if f.Key == KeyImageURLs {
				continue
			}
			attrs = append(attrs, domain.Attribute{Key: f.Key, Value: f.Value})
			continue
		}
		switch kind {
		case asDate:
			p.ReleaseDate = parseDate(f.Value)
		case asNumber:
			nums[f.Key] = parseNumber(f.Value)
		case asCount:
			p.CountInStock = parseCount(f.Value)
		case asList:
			lists[f.Key] = append(lists[f.Key], splitList(f.Value)...)
		default:
			strs[f.Key] = strings.TrimSpace(f.Value)
		}
	}
	p.Name = strs["name"]
	p.Brand = strs["brand"]
	p.Description = strs["description"]
	p.GenderCategory = orDefault(strs["genderCategory"], domain.GenderUnisex)
	p.Category = resolveCategory(orDefault(strs["category"], string(domain.CategoryShoes)))
	p.Condition = orDefault(strs["condition"], domain.ConditionNew)
	p.InventoryStatus = orDefault(strs["inventoryStatus"], domain.StatusInStock)

	p.Price = nums["price"]
	p.OriginalPrice = nums["originalPrice"]
	p.SellingPrice = nums["sellingPrice"]

	p.Sizes = nonNil(lists["sizes"])
	p.Colors = nonNil(lists["colors"])
	p.ImageURLs = []string{}

	return Normalized{Product: p, Attributes: attrs}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseCount(s string) *int {
	v := parseNumber(s)
	if v == nil || *v != math.Trunc(*v) || math.Abs(*v) > math.MaxInt32 {
		return nil
	}
	n := int(*v)
	return &n
}

// splitList splits on commas and trims each token. Empty tokens between
// commas are kept; a blank value yields nothing.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseDate(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			iso := t.UTC().Format(isoLayout)
			return &iso
		}
	}
	return nil
}

// resolveCategory matches category names regardless of case. Unknown names
// pass through so the validator reports them.
func resolveCategory(s string) domain.Category {
	if c, ok := catalog.ParseCategory(s); ok {
		return c
	}
	return domain.Category(s)
}
