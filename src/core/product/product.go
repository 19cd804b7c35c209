// Package product extracts structured product records from retrieved text.
//
// Retrieved chunks are opaque strings; only the ones that happen to encode a
// product row (name, category, price, discount, source as comma-separated
// fields) produce records. Everything else is skipped without error, so the
// extractor is safe to run over arbitrary retrieval output.
package product

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// UnknownSource is used when a fragment carries no provenance metadata.
const UnknownSource = "unknown"

// minParts is the number of comma-separated fields a fragment needs to be
// treated as a product row.
const minParts = 5

// Fragment is a unit of retrieved text with optional metadata, as handed
// back by the retrieval layer.
type Fragment struct {
	Text     string
	Metadata map[string]interface{}
}

// Source resolves the fragment's provenance from its metadata, trying the
// "source" key first, then "file_path", falling back to UnknownSource.
func (f Fragment) Source() string {
	for _, key := range []string{"source", "file_path"} {
		if v, ok := f.Metadata[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return UnknownSource
}

// Record is a single extracted product entry.
type Record struct {
	Category        string  `json:"category"`
	Price           float64 `json:"price"`
	Discount        string  `json:"discount"`
	DiscountedPrice float64 `json:"discounted_price"`
	Source          string  `json:"source"`
}

// Result maps a product name to its records, in the order the fragments
// were processed. A product referenced by several fragments accumulates
// several records.
type Result map[string][]Record

// DiscountedPrice applies a textual discount to price and rounds to two
// decimal places. Three notations are accepted: "20%" (percent sign),
// "20" (bare value of 1 or more, read as a percentage), and "0.2" (value
// below 1, read as a fraction). An unparseable discount leaves the price
// unchanged rather than failing.
//
// Note the boundary: a bare discount of exactly "1" lands in the
// percentage branch and means 1% off, not 100%. Counterintuitive, but it
// is the pipeline's long-standing behavior and is kept as is.
func DiscountedPrice(price float64, discount string) float64 {
	var fraction float64

	if strings.Contains(discount, "%") {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.Trim(discount, "%")), 64)
		if err != nil {
			return price
		}
		fraction = v / 100
	} else {
		v, err := strconv.ParseFloat(strings.TrimSpace(discount), 64)
		if err != nil {
			return price
		}
		if v >= 1 {
			v /= 100
		}
		fraction = v
	}

	return round2(price - price*fraction)
}

// Extract scans fragments in order and collects every one that matches the
// product row shape. Fragments with fewer than five comma-separated fields
// or an unparseable price are skipped silently; a bad row never fails the
// batch.
func Extract(fragments []Fragment) Result {
	results := make(Result)

	for _, frag := range fragments {
		parts := strings.Split(strings.TrimSpace(frag.Text), ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < minParts {
			continue
		}

		name, category, rawPrice, discount, source := parts[0], parts[1], parts[2], parts[3], parts[4]

		price, err := ParsePrice(rawPrice)
		if err != nil {
			continue
		}

		results[name] = append(results[name], Record{
			Category:        category,
			Price:           price,
			Discount:        discount,
			DiscountedPrice: DiscountedPrice(price, discount),
			Source:          source,
		})
	}

	return results
}

// FormatSources collects the distinct sources of the given fragments into a
// single display string, sorted lexicographically and joined with ", ".
func FormatSources(fragments []Fragment) string {
	seen := make(map[string]struct{})
	sources := make([]string, 0, len(fragments))
	for _, frag := range fragments {
		src := frag.Source()
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		sources = append(sources, src)
	}
	sort.Strings(sources)
	return strings.Join(sources, ", ")
}

// ParsePrice parses a raw price string after dropping every character that
// is not a digit or a decimal point, so "$1,200.50" and "1200.50" parse to
// the same value.
func ParsePrice(raw string) (float64, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return strconv.ParseFloat(b.String(), 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
