package weather

import (
	"sort"
	"strings"
)

// SortKey names the primary ordering of a listing query.
type SortKey int

const (
	SortByID SortKey = iota
	SortByDate
)

// SortDirection is the direction of the primary sort key.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

const (
	// DefaultPageSize is used when the caller does not ask for a size.
	DefaultPageSize = 10
)

// QuerySpec is the normalized, request-scoped form of the listing
// parameters. It is built fresh per request and never persisted.
//
// A nil Date means no date constraint. An empty Cities slice means no city
// constraint; it is never "match nothing". Cities are lower-cased, trimmed
// and de-duplicated. The resulting order is always total: whenever Sort is
// SortByDate, ties are broken by ascending id.
type QuerySpec struct {
	Date      *Date
	Cities    []string
	Sort      SortKey
	Direction SortDirection
	Page      int
	Size      int
}

// ParseListQuery turns the raw, optional query parameters of the listing
// endpoint into a QuerySpec.
//
// A malformed date is the only input that fails; every other irregularity
// (unknown sort token, empty city list, out-of-range paging values) degrades
// to the default behaviour on purpose.
func ParseListQuery(date, city, sortToken string, page, size int) (QuerySpec, error) {
	spec := QuerySpec{Page: page, Size: size}

	if date != "" {
		parsed, err := ParseDate(date)
		if err != nil {
			return QuerySpec{}, err
		}
		spec.Date = &parsed
	}

	spec.Cities = normalizeCities(city)
	spec.Sort, spec.Direction = resolveSort(sortToken)

	if spec.Page < 0 {
		spec.Page = 0
	}
	if spec.Size <= 0 {
		spec.Size = DefaultPageSize
	}

	return spec, nil
}

// normalizeCities splits a comma-separated city parameter into a sorted,
// lower-cased set. Blank tokens collapse away, so "city=, ," is the same as
// no city parameter at all.
func normalizeCities(raw string) []string {
	if raw == "" {
		return nil
	}

	seen := make(map[string]struct{})
	for _, token := range strings.Split(raw, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		seen[token] = struct{}{}
	}
	if len(seen) == 0 {
		return nil
	}

	cities := make([]string, 0, len(seen))
	for c := range seen {
		cities = append(cities, c)
	}
	sort.Strings(cities)
	return cities
}

// resolveSort maps the sort token to a key and direction once, at
// normalization time. Unrecognized tokens silently fall back to the default
// ascending-by-id order.
func resolveSort(token string) (SortKey, SortDirection) {
	switch token {
	case "date":
		return SortByDate, Ascending
	case "-date":
		return SortByDate, Descending
	default:
		return SortByID, Ascending
	}
}

// Less is the total order a store must produce for this spec: the primary
// key is Sort/Direction, and whenever the primary key is the date, equal
// dates are ordered by ascending id. Ids are unique, so no ties remain.
func (q QuerySpec) Less(a, b Record) bool {
	if q.Sort == SortByDate {
		if !a.Date.Equal(b.Date) {
			if q.Direction == Descending {
				return b.Date.Before(a.Date)
			}
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	}
	return a.ID < b.ID
}

// Matches reports whether a record passes the spec's filters. A record
// matches the date filter when the filter is unset, the record's date is
// unset, or both dates are equal. A record matches the city filter when the
// filter set is empty or contains the lower-cased stored city. Both must
// hold.
func (q QuerySpec) Matches(r Record) bool {
	if q.Date != nil && !r.Date.IsZero() && !r.Date.Equal(*q.Date) {
		return false
	}
	if len(q.Cities) == 0 {
		return true
	}
	city := strings.ToLower(r.City)
	for _, c := range q.Cities {
		if c == city {
			return true
		}
	}
	return false
}
