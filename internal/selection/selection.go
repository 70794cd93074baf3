// Package selection parses free-text index selections like "0,2-4".
package selection

import (
	"sort"
	"strconv"
	"strings"
)

// Parse expands a comma-separated selection of indices and inclusive dashed
// ranges into a sorted, deduplicated slice of indices in [0, n). Tokens that
// are not numeric, ranges that are backwards, and out-of-range indices are
// silently dropped.
func Parse(expr string, n int) []int {
	chosen := make(map[int]bool)

	for _, token := range strings.Split(expr, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if start, end, ok := parseRange(token); ok {
			for i := start; i <= end; i++ {
				chosen[i] = true
			}
			continue
		}

		if i, err := strconv.Atoi(token); err == nil && i >= 0 {
			chosen[i] = true
		}
	}

	indices := make([]int, 0, len(chosen))
	for i := range chosen {
		if i >= 0 && i < n {
			indices = append(indices, i)
		}
	}
	sort.Ints(indices)
	return indices
}

// parseRange parses "a-b" into its inclusive bounds.
func parseRange(token string) (start, end int, ok bool) {
	before, after, found := strings.Cut(token, "-")
	if !found {
		return 0, 0, false
	}

	start, err := strconv.Atoi(strings.TrimSpace(before))
	if err != nil || start < 0 {
		return 0, 0, false
	}
	end, err = strconv.Atoi(strings.TrimSpace(after))
	if err != nil || end < start {
		return 0, 0, false
	}

	return start, end, true
}
