package product_test

import (
	"reflect"
	"testing"

	"dealrag/src/core/product"
)

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount string
		want     float64
	}{
		{
			name:     "percent sign",
			price:    100,
			discount: "20%",
			want:     80.0,
		},
		{
			name:     "bare value of one or more is a percentage",
			price:    100,
			discount: "20",
			want:     80.0,
		},
		{
			name:     "bare value below one is a fraction",
			price:    100,
			discount: "0.2",
			want:     80.0,
		},
		{
			name:     "boundary: exactly one means one percent",
			price:    100,
			discount: "1",
			want:     99.0,
		},
		{
			name:     "unparseable discount leaves price unchanged",
			price:    100,
			discount: "abc",
			want:     100.0,
		},
		{
			name:     "percent with leading whitespace",
			price:    50,
			discount: " 10%",
			want:     45.0,
		},
		{
			name:     "text after the percent sign falls back",
			price:    50,
			discount: "10% off",
			want:     50.0,
		},
		{
			name:     "rounds to two decimals",
			price:    9.99,
			discount: "33%",
			want:     6.69,
		},
		{
			name:     "zero discount",
			price:    42.5,
			discount: "0",
			want:     42.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := product.DiscountedPrice(tt.price, tt.discount)
			if got != tt.want {
				t.Errorf("DiscountedPrice(%v, %q) = %v, want %v",
					tt.price, tt.discount, got, tt.want)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name      string
		fragments []product.Fragment
		want      product.Result
	}{
		{
			name: "single product row",
			fragments: []product.Fragment{
				{Text: "Widget, Tools, $50.00, 10%, catalog.csv"},
			},
			want: product.Result{
				"Widget": {
					{Category: "Tools", Price: 50.0, Discount: "10%", DiscountedPrice: 45.0, Source: "catalog.csv"},
				},
			},
		},
		{
			name: "unstructured text is skipped",
			fragments: []product.Fragment{
				{Text: "Widget, Tools, $50.00, 10%, catalog.csv"},
				{Text: "irrelevant text with no commas-structure here"},
			},
			want: product.Result{
				"Widget": {
					{Category: "Tools", Price: 50.0, Discount: "10%", DiscountedPrice: 45.0, Source: "catalog.csv"},
				},
			},
		},
		{
			name: "fewer than five parts is skipped",
			fragments: []product.Fragment{
				{Text: "Widget, Tools, $50.00, 10%"},
			},
			want: product.Result{},
		},
		{
			name: "unparseable price drops the row only",
			fragments: []product.Fragment{
				{Text: "Widget, Tools, n/a, 10%, catalog.csv"},
				{Text: "Gadget, Tools, 10.00, 0.5, catalog.csv"},
			},
			want: product.Result{
				"Gadget": {
					{Category: "Tools", Price: 10.0, Discount: "0.5", DiscountedPrice: 5.0, Source: "catalog.csv"},
				},
			},
		},
		{
			name: "currency symbol in price is stripped",
			fragments: []product.Fragment{
				{Text: "Laptop, Electronics, $1200.50, 50%, inventory.csv"},
			},
			want: product.Result{
				"Laptop": {
					{Category: "Electronics", Price: 1200.50, Discount: "50%", DiscountedPrice: 600.25, Source: "inventory.csv"},
				},
			},
		},
		{
			name: "same product accumulates records in order",
			fragments: []product.Fragment{
				{Text: "Widget, Tools, 50, 10%, a.csv"},
				{Text: "Widget, Hardware, 60, 50%, b.csv"},
			},
			want: product.Result{
				"Widget": {
					{Category: "Tools", Price: 50.0, Discount: "10%", DiscountedPrice: 45.0, Source: "a.csv"},
					{Category: "Hardware", Price: 60.0, Discount: "50%", DiscountedPrice: 30.0, Source: "b.csv"},
				},
			},
		},
		{
			name: "parts beyond the fifth are ignored",
			fragments: []product.Fragment{
				{Text: "Widget, Tools, 50, 10%, a.csv, extra, fields"},
			},
			want: product.Result{
				"Widget": {
					{Category: "Tools", Price: 50.0, Discount: "10%", DiscountedPrice: 45.0, Source: "a.csv"},
				},
			},
		},
		{
			name:      "empty input",
			fragments: nil,
			want:      product.Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := product.Extract(tt.fragments)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	fragments := []product.Fragment{
		{Text: "Widget, Tools, $50.00, 10%, catalog.csv"},
		{Text: "Gadget, Toys, 9.99, 0.1, toys.csv"},
		{Text: "not a product row"},
	}

	first := product.Extract(fragments)
	second := product.Extract(fragments)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Extract is not idempotent: first %#v, second %#v", first, second)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{
			name: "plain number",
			raw:  "1200.50",
			want: 1200.50,
		},
		{
			name: "currency symbol and thousands separator",
			raw:  "$1,200.50",
			want: 1200.50,
		},
		{
			name: "surrounding text",
			raw:  "USD 99",
			want: 99,
		},
		{
			name:    "no digits at all",
			raw:     "n/a",
			wantErr: true,
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := product.ParsePrice(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePrice(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFragmentSource(t *testing.T) {
	tests := []struct {
		name     string
		fragment product.Fragment
		want     string
	}{
		{
			name:     "source key",
			fragment: product.Fragment{Metadata: map[string]interface{}{"source": "a.csv"}},
			want:     "a.csv",
		},
		{
			name:     "file_path fallback",
			fragment: product.Fragment{Metadata: map[string]interface{}{"file_path": "b.txt"}},
			want:     "b.txt",
		},
		{
			name:     "missing metadata",
			fragment: product.Fragment{},
			want:     "unknown",
		},
		{
			name:     "empty source falls through",
			fragment: product.Fragment{Metadata: map[string]interface{}{"source": "", "file_path": "c.txt"}},
			want:     "c.txt",
		},
		{
			name:     "non-string source is ignored",
			fragment: product.Fragment{Metadata: map[string]interface{}{"source": 42}},
			want:     "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fragment.Source(); got != tt.want {
				t.Errorf("Source() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatSources(t *testing.T) {
	tests := []struct {
		name      string
		fragments []product.Fragment
		want      string
	}{
		{
			name: "deduplicated and sorted",
			fragments: []product.Fragment{
				{Metadata: map[string]interface{}{"source": "b.csv"}},
				{Metadata: map[string]interface{}{"source": "a.csv"}},
				{Metadata: map[string]interface{}{"source": "a.csv"}},
			},
			want: "a.csv, b.csv",
		},
		{
			name:      "empty input",
			fragments: nil,
			want:      "",
		},
		{
			name: "missing metadata yields sentinel",
			fragments: []product.Fragment{
				{Text: "whatever"},
			},
			want: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := product.FormatSources(tt.fragments); got != tt.want {
				t.Errorf("FormatSources() = %q, want %q", got, tt.want)
			}
		})
	}
}
