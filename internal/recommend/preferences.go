package recommend

import (
	"math"
	"sort"
)

// Complexity ratings live on a 1-5 scale
const (
	MinComplexity = 1.0
	MaxComplexity = 5.0
)

// Bounds is an optional closed interval. Either side may be unset.
type Bounds struct {
	Min *float64
	Max *float64
}

// FullySpecified reports whether both bounds are set
func (b Bounds) FullySpecified() bool {
	return b.Min != nil && b.Max != nil
}

// Unset reports whether neither bound is set
func (b Bounds) Unset() bool {
	return b.Min == nil && b.Max == nil
}

// Contains treats an unset bound as unbounded on that side
func (b Bounds) Contains(v float64) bool {
	if b.Min != nil && v < *b.Min {
		return false
	}
	if b.Max != nil && v > *b.Max {
		return false
	}
	return true
}

// NormalizedPreferences is a PlayerPreferences record in which every field is
// either valid or explicitly unset.
type NormalizedPreferences struct {
	PlayerID             string
	PlayTime             Bounds
	Complexity           Bounds
	PreferredPlayerCount *int
	Categories           map[string]struct{}
}

// HasCategory reports whether the player prefers the given category
func (n NormalizedPreferences) HasCategory(c string) bool {
	_, ok := n.Categories[c]
	return ok
}

// CategoryList returns the preferred categories in sorted order
func (n NormalizedPreferences) CategoryList() []string {
	out := make([]string, 0, len(n.Categories))
	for c := range n.Categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// NormalizePreferences validates a preference record and fills in "unset" for
// anything missing or inconsistent. A nil record normalizes to all-unset.
// The input is never modified.
func NormalizePreferences(p *PlayerPreferences) NormalizedPreferences {
	n := NormalizedPreferences{Categories: map[string]struct{}{}}
	if p == nil {
		return n
	}
	n.PlayerID = p.PlayerID

	n.PlayTime = normalizeBounds(intToFloat(positiveInt(p.MinPlayTime)), intToFloat(positiveInt(p.MaxPlayTime)))
	n.Complexity = normalizeBounds(complexityValue(p.ComplexityMin), complexityValue(p.ComplexityMax))

	if count := positiveInt(p.PreferredPlayerCount); count != nil {
		v := *count
		n.PreferredPlayerCount = &v
	}

	for _, c := range p.PreferredCategories {
		if c == "" {
			continue
		}
		n.Categories[c] = struct{}{}
	}

	return n
}

// normalizeBounds drops the whole pair when min > max
func normalizeBounds(lo, hi *float64) Bounds {
	if lo != nil && hi != nil && *lo > *hi {
		return Bounds{}
	}
	return Bounds{Min: lo, Max: hi}
}

func positiveInt(v *int) *int {
	if v == nil || *v < 1 {
		return nil
	}
	return v
}

func intToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

func complexityValue(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || *v < MinComplexity || *v > MaxComplexity {
		return nil
	}
	f := *v
	return &f
}
