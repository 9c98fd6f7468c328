package gdc

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MultipleCaseID replaces a Case_ID cell naming more than one distinct case.
const MultipleCaseID = "MULTIPLE"

// DefaultCut drops the 36-character file UUID that GDC puts in front of most
// file names.
var DefaultCut = Cut{Chars: 36}

// Cut describes how an original file name is shortened before the unique
// identifier is prepended: each prefix is stripped in order, if present, and
// then Chars leading characters are dropped.
type Cut struct {
	Prefixes []string
	Chars    int
}

// ParseCut parses a comma-separated list of literal prefixes followed by a
// trailing character count, e.g. "36", "TCGA-,36" or "nationwidechildrens.org_,0".
// When the last element is not an integer every element is a prefix and the
// count is zero.
func ParseCut(spec string) (Cut, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Cut{}, nil
	}
	parts := strings.Split(spec, ",")
	var c Cut
	last := strings.TrimSpace(parts[len(parts)-1])
	if n, err := strconv.Atoi(last); err == nil {
		if n < 0 {
			return Cut{}, fmt.Errorf("%w: negative character count %d", ErrInvalidCut, n)
		}
		c.Chars = n
		parts = parts[:len(parts)-1]
	}
	for _, p := range parts {
		if p == "" {
			return Cut{}, fmt.Errorf("%w: empty prefix in %q", ErrInvalidCut, spec)
		}
		c.Prefixes = append(c.Prefixes, p)
	}
	return c, nil
}

// String formats the cut the way ParseCut reads it.
func (c Cut) String() string {
	return strings.Join(append(slices.Clone(c.Prefixes), strconv.Itoa(c.Chars)), ",")
}

// Apply shortens name according to the cut. Chars counts characters, not
// bytes.
func (c Cut) Apply(name string) string {
	for _, p := range c.Prefixes {
		name = strings.TrimPrefix(name, p)
	}
	for range c.Chars {
		if name == "" {
			return ""
		}
		_, size := utf8.DecodeRuneInString(name)
		name = name[size:]
	}
	return name
}

// NormalizeCaseID reduces a Case_ID cell to a single case id. Cells listing
// several distinct cases become MultipleCaseID.
func NormalizeCaseID(raw string) string {
	var cases []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" && !slices.Contains(cases, part) {
			cases = append(cases, part)
		}
	}
	switch len(cases) {
	case 0:
		return ""
	case 1:
		return cases[0]
	}
	return MultipleCaseID
}
