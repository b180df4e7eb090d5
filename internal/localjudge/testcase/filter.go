package testcase

import (
	"sort"
	"strconv"
	"strings"

	appErr "kat/pkg/errors"
)

// FilterAll is the filter expression selecting every discovered test.
const FilterAll = "all"

// maxRangeSpan bounds a single "a-b" token so a typo cannot allocate unbounded memory.
const maxRangeSpan = 100000

// Filter selects test ids. A nil ids set means every id is selected.
type Filter struct {
	ids map[uint64]struct{}
}

// AllTests returns the filter that keeps every discovered pair.
func AllTests() Filter {
	return Filter{}
}

// ParseFilter parses "all" or a comma separated list of ids and inclusive
// ranges such as "1,3-5". An empty expression is treated as "all".
func ParseFilter(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || expr == FilterAll {
		return AllTests(), nil
	}

	ids := make(map[uint64]struct{})
	for _, token := range strings.Split(expr, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return Filter{}, invalidFilter(expr, "empty token")
		}
		start, end, err := parseToken(token)
		if err != nil {
			return Filter{}, invalidFilter(expr, err.Error())
		}
		for id := start; ; id++ {
			ids[id] = struct{}{}
			if id == end {
				break
			}
		}
	}
	return Filter{ids: ids}, nil
}

func parseToken(token string) (uint64, uint64, error) {
	left, right, isRange := strings.Cut(token, "-")
	start, err := parseID(left)
	if err != nil {
		return 0, 0, err
	}
	if !isRange {
		return start, start, nil
	}
	end, err := parseID(right)
	if err != nil {
		return 0, 0, err
	}
	if start > end {
		return 0, 0, appErr.Newf(appErr.InvalidFilter, "range %s is descending", token)
	}
	if end-start > maxRangeSpan {
		return 0, 0, appErr.Newf(appErr.InvalidFilter, "range %s is too large", token)
	}
	return start, end, nil
}

func parseID(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, appErr.New(appErr.InvalidFilter).WithMessage("missing number")
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, appErr.Newf(appErr.InvalidFilter, "%q is not a number", raw)
		}
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, appErr.Wrapf(err, appErr.InvalidFilter, "%q is out of range", raw)
	}
	return id, nil
}

func invalidFilter(expr, reason string) error {
	return appErr.Newf(appErr.InvalidFilter, "invalid test filter %q: %s", expr, reason).
		WithDetail("filter", expr)
}

// IsAll reports whether the filter keeps every id.
func (f Filter) IsAll() bool {
	return f.ids == nil
}

// Contains reports whether id is selected.
func (f Filter) Contains(id uint64) bool {
	if f.ids == nil {
		return true
	}
	_, ok := f.ids[id]
	return ok
}

// IDs returns the explicit ids in ascending order, or nil for "all".
func (f Filter) IDs() []uint64 {
	if f.ids == nil {
		return nil
	}
	out := make([]uint64, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
