package weather

import (
	"context"
	"log"
	"strings"
)

// Store is the contract the record stores must satisfy.
//
// Save assigns the id; callers never supply one and the id never changes
// afterwards. Query applies the spec's filters, orders the matches by the
// spec's total order and returns the requested page plus the total match
// count across all pages. An out-of-range page yields an empty slice, not an
// error. Id uniqueness under concurrent saves is the store's contract.
type Store interface {
	Save(ctx context.Context, rec Record) (Record, error)
	FindByID(ctx context.Context, id int) (Record, error)
	Query(ctx context.Context, spec QuerySpec) ([]Record, int64, error)
}

// Service orchestrates record creation, lookup and the listing query:
// normalize parameters, delegate to the store, assemble the page. It holds
// no per-request state, so it is safe for concurrent use.
type Service struct {
	store    Store
	geocoder *Geocoder
}

// NewService creates a new Service. The geocoder is optional; pass nil to
// disable coordinate enrichment.
func NewService(store Store, geocoder *Geocoder) *Service {
	return &Service{
		store:    store,
		geocoder: geocoder,
	}
}

// Create persists a new record and returns it with the store-assigned id.
// Any caller-supplied id is discarded. When a geocoder is configured and the
// record carries no coordinates, they are resolved from city and state;
// resolution failures are logged and the create still succeeds.
func (s *Service) Create(ctx context.Context, rec Record) (Record, error) {
	rec.ID = 0

	if s.geocoder != nil && rec.Lat == nil && rec.Lon == nil {
		lat, lon, err := s.geocoder.Resolve(rec.City, rec.State)
		if err != nil {
			log.Printf("geocode failed for %s, %s: %v", rec.City, rec.State, err)
		} else {
			rec.Lat = &lat
			rec.Lon = &lon
		}
	}

	return s.store.Save(ctx, rec)
}

// List resolves the raw listing parameters into a QuerySpec, runs the store
// query and maps the result into a page. A malformed date fails here with
// ErrInvalidDate before any store call is made.
func (s *Service) List(ctx context.Context, date, city, sortToken string, page, size int) (Page[Record], error) {
	spec, err := ParseListQuery(date, city, sortToken, page, size)
	if err != nil {
		return Page[Record]{}, err
	}

	log.Printf("listing weather records: date=%s cities=%s sort=%s page=%d size=%d",
		orNone(date), orNone(strings.Join(spec.Cities, ",")), orNone(sortToken), spec.Page, spec.Size)

	items, total, err := s.store.Query(ctx, spec)
	if err != nil {
		return Page[Record]{}, err
	}

	return Page[Record]{
		Items:      items,
		TotalCount: total,
		PageIndex:  spec.Page,
		PageSize:   spec.Size,
	}, nil
}

// GetByID returns the record with the given id. A missing record surfaces
// the store's not-found error unchanged.
func (s *Service) GetByID(ctx context.Context, id int) (Record, error) {
	return s.store.FindByID(ctx, id)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
