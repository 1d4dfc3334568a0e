package fault

import (
	"fmt"
	"strings"
)

// Category identifies a single fault kind as a bit flag.
// Category values are stable and externally supplied by the host runtime;
// they are only ever used in bitwise membership tests against a Mask.
type Category uint32

const (
	// CategoryFatal indicates an unrecoverable failure. Fatal faults may only be
	// observable at process-exit time if the host cannot hand them off normally.
	CategoryFatal Category = 1 << iota

	// CategoryParse indicates a compile or parse failure reported by the host.
	CategoryParse

	// CategoryRecoverable indicates a failure the host can continue past,
	// typically the kind worth escalating into a propagatable error.
	CategoryRecoverable

	// CategoryWarning indicates a condition that did not interrupt execution.
	CategoryWarning

	// CategoryNotice indicates an advisory condition. Configuration problems in
	// this package itself are reported at this severity.
	CategoryNotice

	// CategoryDeprecated indicates use of functionality scheduled for removal.
	CategoryDeprecated
)

// Mask is a bit-set of fault categories. Masks define policy thresholds: a fault
// passes a threshold when its category is a member of the mask.
type Mask uint32

const (
	// MaskNone is the empty mask. No category is a member.
	MaskNone Mask = 0

	// MaskAll contains every defined category.
	MaskAll = Mask(CategoryFatal | CategoryParse | CategoryRecoverable |
		CategoryWarning | CategoryNotice | CategoryDeprecated)
)

// categoryNames maps each category to its canonical configuration name.
var categoryNames = map[Category]string{
	CategoryFatal:       "fatal",
	CategoryParse:       "parse",
	CategoryRecoverable: "recoverable",
	CategoryWarning:     "warning",
	CategoryNotice:      "notice",
	CategoryDeprecated:  "deprecated",
}

// MaskOf builds a mask from the given categories.
func MaskOf(categories ...Category) Mask {
	m := MaskNone
	for _, c := range categories {
		m |= Mask(c)
	}
	return m
}

// Has reports whether c is a member of the mask.
func (m Mask) Has(c Category) bool {
	return m&Mask(c) != 0
}

// Union returns the mask containing every category in m or o.
func (m Mask) Union(o Mask) Mask {
	return m | o
}

// Intersect returns the mask containing the categories common to m and o.
func (m Mask) Intersect(o Mask) Mask {
	return m & o
}

// Empty reports whether no category is a member of the mask.
func (m Mask) Empty() bool {
	return m == MaskNone
}

// Ptr returns a pointer to m, for use in Levels partial updates.
//
// Example:
//
//	prev := handler.SetLevel(fault.Levels{Thrown: fault.MaskNone.Ptr()})
func (m Mask) Ptr() *Mask {
	return &m
}

// String returns the canonical name of the category, or "unknown" for values
// outside the defined universe.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// String returns the pipe-separated names of the mask's members, "none" for the
// empty mask, or "all" when every defined category is present.
func (m Mask) String() string {
	if m == MaskNone {
		return "none"
	}
	if m == MaskAll {
		return "all"
	}
	names := make([]string, 0, len(categoryNames))
	for c := CategoryFatal; c <= CategoryDeprecated; c <<= 1 {
		if m.Has(c) {
			names = append(names, c.String())
		}
	}
	return strings.Join(names, "|")
}

// ParseCategory returns the category with the given canonical name.
// Matching is case-insensitive.
func ParseCategory(name string) (Category, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for c, n := range categoryNames {
		if n == lowered {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown fault category %q", name)
}

// ParseMask builds a mask from a list of category names. The special names
// "all" and "none" are accepted and may be combined with category names.
func ParseMask(names []string) (Mask, error) {
	m := MaskNone
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "all":
			m = m.Union(MaskAll)
		case "none":
			// No-op member, useful for explicit empty masks in config files.
		default:
			c, err := ParseCategory(name)
			if err != nil {
				return MaskNone, err
			}
			m |= Mask(c)
		}
	}
	return m, nil
}
