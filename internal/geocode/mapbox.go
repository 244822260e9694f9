package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"campmate/internal/models"
)

// ErrNoResults is returned when forward geocoding finds no candidate for the
// query text.
var ErrNoResults = errors.New("geocode: no results for query")

// Geocoder resolves free-text locations to a GeoJSON point.
type Geocoder interface {
	Forward(ctx context.Context, query string) (models.Geometry, error)
}

const defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// MapboxClient calls the Mapbox forward-geocoding v5 endpoint.
type MapboxClient struct {
	Token      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewMapboxClient(token string) *MapboxClient {
	return &MapboxClient{
		Token:      token,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type forwardResponse struct {
	Features []struct {
		Geometry models.Geometry `json:"geometry"`
	} `json:"features"`
}

func (m *MapboxClient) Forward(ctx context.Context, query string) (models.Geometry, error) {
	endpoint := fmt.Sprintf("%s/%s.json?access_token=%s&limit=1",
		m.BaseURL, url.PathEscape(query), url.QueryEscape(m.Token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Geometry{}, err
	}

	client := m.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return models.Geometry{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Geometry{}, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var parsed forwardResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.Geometry{}, err
	}

	if len(parsed.Features) == 0 {
		return models.Geometry{}, ErrNoResults
	}

	return parsed.Features[0].Geometry, nil
}
