package weather

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestParseListQueryDate(t *testing.T) {
	spec, err := ParseListQuery("2019-03-12", "", "", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Date == nil {
		t.Fatal("expected a date filter")
	}
	if !spec.Date.Equal(NewDate(2019, time.March, 12)) {
		t.Fatalf("parsed date = %s, want 2019-03-12", spec.Date)
	}

	spec, err = ParseListQuery("", "", "", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Date != nil {
		t.Fatal("empty date parameter must mean no filter")
	}

	_, err = ParseListQuery("not-a-date", "", "", 0, 10)
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	_, err = ParseListQuery("2019-13-40", "", "", 0, 10)
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for out-of-range date, got %v", err)
	}
}

func TestParseListQueryCities(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"Moscow", []string{"moscow"}},
		{"moscow,London", []string{"london", "moscow"}},
		{" London , MOSCOW ,london", []string{"london", "moscow"}},
		{", ,", nil}, // blank tokens collapse to "no filter"
	}
	for _, tc := range cases {
		spec, err := ParseListQuery("", tc.raw, "", 0, 10)
		if err != nil {
			t.Fatalf("city %q: unexpected error: %v", tc.raw, err)
		}
		if !reflect.DeepEqual(spec.Cities, tc.want) {
			t.Fatalf("city %q: got %v, want %v", tc.raw, spec.Cities, tc.want)
		}
	}
}

func TestParseListQuerySort(t *testing.T) {
	cases := []struct {
		token   string
		wantKey SortKey
		wantDir SortDirection
	}{
		{"date", SortByDate, Ascending},
		{"-date", SortByDate, Descending},
		{"", SortByID, Ascending},
		{"city", SortByID, Ascending},
		{"DATE", SortByID, Ascending}, // tokens are exact, not case-folded
	}
	for _, tc := range cases {
		spec, err := ParseListQuery("", "", tc.token, 0, 10)
		if err != nil {
			t.Fatalf("sort %q: unexpected error: %v", tc.token, err)
		}
		if spec.Sort != tc.wantKey || spec.Direction != tc.wantDir {
			t.Fatalf("sort %q: got (%v, %v), want (%v, %v)",
				tc.token, spec.Sort, spec.Direction, tc.wantKey, tc.wantDir)
		}
	}
}

func TestParseListQueryPagingDefaults(t *testing.T) {
	spec, err := ParseListQuery("", "", "", -3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Page != 0 || spec.Size != DefaultPageSize {
		t.Fatalf("got page=%d size=%d, want 0/%d", spec.Page, spec.Size, DefaultPageSize)
	}

	spec, _ = ParseListQuery("", "", "", 7, 25)
	if spec.Page != 7 || spec.Size != 25 {
		t.Fatalf("valid paging values must pass through, got page=%d size=%d", spec.Page, spec.Size)
	}
}

func TestQuerySpecMatches(t *testing.T) {
	date := NewDate(2019, time.March, 12)
	rec := Record{ID: 1, Date: date, City: "Moscow"}
	undated := Record{ID: 2, City: "Moscow"}

	var spec QuerySpec
	if !spec.Matches(rec) {
		t.Fatal("unconstrained spec must match everything")
	}

	spec.Date = &date
	if !spec.Matches(rec) {
		t.Fatal("equal date must match")
	}
	if !spec.Matches(undated) {
		t.Fatal("a record without a date must match any date filter")
	}
	other := NewDate(2019, time.June, 11)
	spec.Date = &other
	if spec.Matches(rec) {
		t.Fatal("different date must not match")
	}

	spec = QuerySpec{Cities: []string{"moscow"}}
	if !spec.Matches(rec) {
		t.Fatal("city filter must be case-insensitive against stored casing")
	}
	spec.Cities = []string{"berlin"}
	if spec.Matches(rec) {
		t.Fatal("non-member city must not match")
	}
}

func TestQuerySpecLessTieBreak(t *testing.T) {
	d := NewDate(2019, time.March, 12)
	a := Record{ID: 1, Date: d}
	b := Record{ID: 2, Date: d}

	asc := QuerySpec{Sort: SortByDate, Direction: Ascending}
	desc := QuerySpec{Sort: SortByDate, Direction: Descending}

	if !asc.Less(a, b) || asc.Less(b, a) {
		t.Fatal("equal dates must order by ascending id")
	}
	if !desc.Less(a, b) || desc.Less(b, a) {
		t.Fatal("descending date must still break ties by ascending id")
	}

	earlier := Record{ID: 9, Date: NewDate(2019, time.January, 1)}
	if !asc.Less(earlier, a) {
		t.Fatal("ascending: earlier date first regardless of id")
	}
	if !desc.Less(a, earlier) {
		t.Fatal("descending: later date first regardless of id")
	}
}

func TestPageTotalPages(t *testing.T) {
	if got := (Page[Record]{TotalCount: 3, PageSize: 2}).TotalPages(); got != 2 {
		t.Fatalf("TotalPages = %d, want 2", got)
	}
	if got := (Page[Record]{TotalCount: 10, PageSize: 10}).TotalPages(); got != 1 {
		t.Fatalf("TotalPages = %d, want 1", got)
	}
	if got := (Page[Record]{TotalCount: 0, PageSize: 10}).TotalPages(); got != 0 {
		t.Fatalf("TotalPages = %d, want 0", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2019-06-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `"2019-06-11"` {
		t.Fatalf("marshal = %s", b)
	}

	var back Date
	if err := back.UnmarshalJSON(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip mismatch: %s != %s", back, d)
	}

	var zero Date
	if b, _ := zero.MarshalJSON(); string(b) != "null" {
		t.Fatalf("zero date must marshal as null, got %s", b)
	}
}
