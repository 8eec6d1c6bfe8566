package catalog

import (
	"regexp"
	"sort"
	"strconv"
)

// Resolve picks the variant to display for p.
//
// prefs are size labels tried in order (a section's hint first, then its
// secondary label) and must match exactly. Without a match the first in-stock
// variant wins, then the first variant at all. Products without variants get
// a DefaultSize variant built from their own price and images.
func Resolve(p Product, prefs ...string) Variant {
	if len(p.Variants) == 0 {
		return p.defaultVariant()
	}
	for _, want := range prefs {
		if want == "" {
			continue
		}
		for _, v := range p.Variants {
			if v.Size == want {
				return v
			}
		}
	}
	for _, v := range p.Variants {
		if !v.OutOfStock {
			return v
		}
	}
	return p.Variants[0]
}

var leadingNumber = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)`)

// SizeValue extracts the leading number of a size label ("1.5 L" -> 1.5).
func SizeValue(label string) (float64, bool) {
	m := leadingNumber.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	raw := m[1]
	for i := range raw {
		if raw[i] == ',' {
			raw = raw[:i] + "." + raw[i+1:]
			break
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// SortSizes orders labels by their numeric value; unparsable labels go last.
// The input slice is not modified.
func SortSizes(labels []string) []string {
	out := append([]string(nil), labels...)
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := SizeValue(out[i])
		b, bok := SizeValue(out[j])
		switch {
		case aok && bok:
			return a < b
		case aok:
			return true
		default:
			return false
		}
	})
	return out
}

// AvailableSizes lists the distinct variant labels of p in display order.
func AvailableSizes(p Product) []string {
	seen := make(map[string]struct{}, len(p.Variants))
	labels := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		if _, ok := seen[v.Size]; ok {
			continue
		}
		seen[v.Size] = struct{}{}
		labels = append(labels, v.Size)
	}
	return SortSizes(labels)
}
