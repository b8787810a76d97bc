package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// VariantKind selects which inventory representation of a Product is active.
type VariantKind string

const (
	VariantSingle     VariantKind = "single"
	VariantCollection VariantKind = "collection"
)

func ParseVariantKind(s string) (VariantKind, error) {
	switch VariantKind(s) {
	case VariantSingle, VariantCollection:
		return VariantKind(s), nil
	}
	return "", fmt.Errorf("unknown variant kind %q", s)
}

// Palette is the fixed set of colors a collection may be built from.
var Palette = []string{"red", "blue", "green", "black", "white"}

func IsPaletteColor(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}

var (
	ErrMalformedLedger  = errors.New("color ledger is not a sequence of {color, qty} entries")
	ErrDuplicateColor   = errors.New("duplicate color in ledger")
	ErrEmptyColor       = errors.New("empty color in ledger")
	ErrNegativeQuantity = errors.New("negative quantity")
	ErrColorNotInLedger = errors.New("color not in ledger")
)

type ColorEntry struct {
	Color string `json:"color"`
	Qty   int    `json:"qty"`
}

// ColorLedger is the per-color quantity sequence of a collection.
// Order is insertion-stable and carries no meaning.
type ColorLedger []ColorEntry

// Validate checks that colors are non-empty and unique and that no
// quantity is negative.
func (l ColorLedger) Validate() error {
	seen := make(map[string]struct{}, len(l))
	for i, e := range l {
		if e.Color == "" {
			return fmt.Errorf("entry %d: %w", i, ErrEmptyColor)
		}
		if _, dup := seen[e.Color]; dup {
			return fmt.Errorf("entry %d (%s): %w", i, e.Color, ErrDuplicateColor)
		}
		seen[e.Color] = struct{}{}
		if e.Qty < 0 {
			return fmt.Errorf("entry %d (%s): %w", i, e.Color, ErrNegativeQuantity)
		}
	}
	return nil
}

// IndexOf returns the position of color in the ledger, or -1.
func (l ColorLedger) IndexOf(color string) int {
	for i, e := range l {
		if e.Color == color {
			return i
		}
	}
	return -1
}

// WithQuantity returns a copy of the ledger with the entry for color set to
// qty. The key set never changes.
func (l ColorLedger) WithQuantity(color string, qty int) (ColorLedger, error) {
	if qty < 0 {
		return nil, ErrNegativeQuantity
	}
	idx := l.IndexOf(color)
	if idx < 0 {
		return nil, fmt.Errorf("%s: %w", color, ErrColorNotInLedger)
	}
	out := l.Clone()
	out[idx].Qty = qty
	return out, nil
}

func (l ColorLedger) Clone() ColorLedger {
	if l == nil {
		return nil
	}
	out := make(ColorLedger, len(l))
	copy(out, l)
	return out
}

// Encode renders the ledger for storage. An empty ledger is always an
// empty array, never null.
func (l ColorLedger) Encode() ([]byte, error) {
	if l == nil {
		l = ColorLedger{}
	}
	return json.Marshal(l)
}

// DecodeColorLedger parses a stored ledger. Every element must be an object
// with exactly the keys color (a string) and qty (an integer), spelled in
// lower case and each given once. The result must also pass Validate.
func DecodeColorLedger(raw []byte) (ColorLedger, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrMalformedLedger
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLedger, err)
	}

	ledger := make(ColorLedger, 0, len(elems))
	for i, elem := range elems {
		entry, err := decodeColorEntry(elem)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrMalformedLedger, i, err)
		}
		ledger = append(ledger, entry)
	}

	if err := ledger.Validate(); err != nil {
		return nil, err
	}
	return ledger, nil
}

// decodeColorEntry walks the object token by token. Struct decoding would
// match keys case-insensitively and let a repeated key overwrite the first.
func decodeColorEntry(elem json.RawMessage) (ColorEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(elem))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return ColorEntry{}, errors.New("not an object")
	}

	fields := make(map[string]json.RawMessage, 2)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return ColorEntry{}, err
		}
		key := tok.(string)
		if key != "color" && key != "qty" {
			return ColorEntry{}, fmt.Errorf("unexpected key %q", key)
		}
		if _, dup := fields[key]; dup {
			return ColorEntry{}, fmt.Errorf("repeated key %q", key)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return ColorEntry{}, err
		}
		fields[key] = bytes.TrimSpace(value)
	}

	colorRaw, ok := fields["color"]
	if !ok || !bytes.HasPrefix(colorRaw, []byte(`"`)) {
		return ColorEntry{}, errors.New("color must be a string")
	}
	var color string
	if err := json.Unmarshal(colorRaw, &color); err != nil {
		return ColorEntry{}, err
	}

	qtyRaw, ok := fields["qty"]
	if !ok {
		return ColorEntry{}, errors.New("no qty")
	}
	qty, err := strconv.Atoi(string(qtyRaw))
	if err != nil {
		return ColorEntry{}, errors.New("qty must be an integer")
	}

	return ColorEntry{Color: color, Qty: qty}, nil
}

type Product struct {
	ID           string
	Title        string
	Description  string
	Price        decimal.Decimal
	Discount     *decimal.Decimal
	Category     string
	IsNewArrival bool
	Kind         VariantKind
	Stock        *int
	Colors       ColorLedger
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOutOfStock derives display availability from whichever representation
// the variant kind selects. A missing stock count counts as out of stock.
func (p Product) IsOutOfStock() bool {
	switch p.Kind {
	case VariantSingle:
		return p.Stock == nil || *p.Stock == 0
	case VariantCollection:
		for _, e := range p.Colors {
			if e.Qty != 0 {
				return false
			}
		}
		return true
	}
	return true
}

// Clone returns a deep copy so callers may mutate it without aliasing.
func (p Product) Clone() Product {
	out := p
	if p.Discount != nil {
		d := *p.Discount
		out.Discount = &d
	}
	if p.Stock != nil {
		s := *p.Stock
		out.Stock = &s
	}
	out.Colors = p.Colors.Clone()
	return out
}

// ProductFilter narrows product listings. Empty fields match everything.
type ProductFilter struct {
	Title    string
	Category string
}
