package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RawProduct is a products document as the hosted database returns it.
// Fields are loosely typed; Normalize turns it into a Product.
type RawProduct struct {
	ID          string    `json:"id"`
	Brand       string    `json:"brand"`
	Name        string    `json:"name"`
	Price       Amount    `json:"price"`
	OldPrice    Amount    `json:"oldPrice"`
	Badge       string    `json:"badge"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Images      []string  `json:"images"`
	Sizes       []RawSize `json:"sizes"`
	OutOfStock  bool      `json:"outOfStock"`
}

// Amount accepts a JSON number, a numeric string or null.
type Amount struct {
	Value decimal.Decimal
	Set   bool
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = Amount{}
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "₹$€£"))
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			*a = Amount{}
			return nil
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		// unparsable prices are treated as absent
		*a = Amount{}
		return nil
	}
	*a = Amount{Value: d, Set: true}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Set {
		return []byte("null"), nil
	}
	return []byte(a.Value.String()), nil
}

type SizeKind int

const (
	SizeLabel  SizeKind = iota + 1 // "10ml"
	SizeObject                     // {"size": "10ml", "price": 100, ...}
)

// RawSize is one element of a document's sizes list, either a bare label or
// an object carrying its own price and images.
type RawSize struct {
	Kind       SizeKind
	Size       string
	Price      Amount
	OldPrice   Amount
	Images     []string
	OutOfStock bool
}

type rawSizeObject struct {
	Size       string   `json:"size"`
	Label      string   `json:"label"`
	Price      Amount   `json:"price"`
	OldPrice   Amount   `json:"oldPrice"`
	Image      string   `json:"image"`
	Images     []string `json:"images"`
	OutOfStock bool     `json:"outOfStock"`
}

func (r *RawSize) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return fmt.Errorf("catalog: empty size entry")
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = RawSize{Kind: SizeLabel, Size: strings.TrimSpace(s)}
		return nil
	case '{':
		var o rawSizeObject
		if err := json.Unmarshal(b, &o); err != nil {
			return err
		}
		size := strings.TrimSpace(o.Size)
		if size == "" {
			size = strings.TrimSpace(o.Label)
		}
		imgs := o.Images
		if len(imgs) == 0 && o.Image != "" {
			imgs = []string{o.Image}
		}
		*r = RawSize{
			Kind:       SizeObject,
			Size:       size,
			Price:      o.Price,
			OldPrice:   o.OldPrice,
			Images:     imgs,
			OutOfStock: o.OutOfStock,
		}
		return nil
	case 'n':
		*r = RawSize{}
		return nil
	default:
		// numeric labels such as 50 mean "50ml"
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("catalog: unsupported size entry %s", b)
		}
		*r = RawSize{Kind: SizeLabel, Size: n.String() + "ml"}
		return nil
	}
}

func (r RawSize) MarshalJSON() ([]byte, error) {
	if r.Kind == SizeLabel {
		return json.Marshal(r.Size)
	}
	return json.Marshal(rawSizeObject{
		Size:       r.Size,
		Price:      r.Price,
		OldPrice:   r.OldPrice,
		Images:     r.Images,
		OutOfStock: r.OutOfStock,
	})
}

// DecodeRaw decodes one document body.
func DecodeRaw(b []byte) (RawProduct, error) {
	var raw RawProduct
	if err := json.Unmarshal(b, &raw); err != nil {
		return RawProduct{}, fmt.Errorf("catalog: decode product: %w", err)
	}
	return raw, nil
}
