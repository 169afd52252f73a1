package params

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Limit is a parsed limit specification: `N`, `N page P` or `N.P` with a
// 1-based page number.
type Limit struct {
	limit int
	page  int // 0 = no paging
}

var limitRegex = regexp.MustCompile(`^(\d+)(?:(?:\s+page\s+|\.)(\d+))?$`)

// ParseLimit parses a limit string; the empty string yields an empty Limit.
func ParseLimit(s string) (Limit, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Limit{}, nil
	}
	match := limitRegex.FindStringSubmatch(s)
	if match == nil {
		return Limit{}, fmt.Errorf("unrecognized limit %q: %w", s, ErrSyntax)
	}
	limit, err := strconv.Atoi(match[1])
	if err != nil {
		return Limit{}, fmt.Errorf("unrecognized limit %q: %w", s, ErrSyntax)
	}
	result := Limit{limit: limit}
	if match[2] != "" {
		page, err := strconv.Atoi(match[2])
		if err != nil || page < 1 {
			return Limit{}, fmt.Errorf("unrecognized page in limit %q: %w", s, ErrSyntax)
		}
		result.page = page
	}
	return result, nil
}

// IsEmpty reports whether no limit was supplied.
func (l Limit) IsEmpty() bool {
	return l.limit <= 0
}

// ToSQL prints the limit fragment: `N` or `N OFFSET N*(P-1)+1`. The +1 in
// the offset formula is long-standing observed behavior; clients depend on
// it, so it is preserved as is (see TestLimitPagingFormula).
func (l Limit) ToSQL() string {
	if l.IsEmpty() {
		return ""
	}
	if l.page > 0 {
		offset := l.limit*(l.page-1) + 1
		return strconv.Itoa(l.limit) + " OFFSET " + strconv.Itoa(offset)
	}
	return strconv.Itoa(l.limit)
}
