package weather

import (
	"time"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"
)

// Geocoder resolves coordinates for a city/state pair through the Google
// geocoding API. Outbound calls run behind a circuit breaker so a flapping
// upstream cannot slow down record creation.
type Geocoder struct {
	circuit *gobreaker.CircuitBreaker
}

// NewGeocoder configures the geocoding client with the given API key.
func NewGeocoder(apiKey string) *Geocoder {
	geocoder.ApiKey = apiKey

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "geocoder",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Geocoder{circuit: cb}
}

// Resolve returns the latitude and longitude for a city/state pair.
func (g *Geocoder) Resolve(city, state string) (lat, lon float32, err error) {
	address := geocoder.Address{
		City:  city,
		State: state,
	}

	result, err := g.circuit.Execute(func() (interface{}, error) {
		return geocoder.Geocoding(address)
	})
	if err != nil {
		return 0, 0, err
	}

	loc := result.(geocoder.Location)
	return float32(loc.Latitude), float32(loc.Longitude), nil
}
