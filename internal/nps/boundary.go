package nps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ironicbadger/ktz-usa-stamps/internal/park"
)

const (
	defaultBoundaryURL = "https://services1.arcgis.com/fBc8EJBxQRMcHlei/ArcGIS/rest/services/" +
		"NPS_Land_Resources_Division_Boundary_and_Tract_Data_Service/FeatureServer/0/query"

	// PageSize is the number of features requested per boundary query.
	PageSize = 200

	// DefaultType is used for units the service reports without a type.
	DefaultType = "Other Designation"
)

// Regions maps NPS region codes to display names.
var Regions = map[string]string{
	"AK": "Alaska",
	"IM": "Intermountain",
	"MW": "Midwest",
	"NC": "National Capital",
	"NE": "Northeast",
	"PW": "Pacific West",
	"SE": "Southeast",
}

// BoundaryClient pages through the NPS unit centroid feature service.
type BoundaryClient struct {
	httpClient *http.Client

	// Overridable URL for testing.
	queryURL string
}

// NewBoundaryClient creates a client for the public boundary service.
func NewBoundaryClient() *BoundaryClient {
	return &BoundaryClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		queryURL:   defaultBoundaryURL,
	}
}

// Feature is one unit returned by the boundary service.
type Feature struct {
	Attributes struct {
		UnitCode string `json:"UNIT_CODE"`
		UnitName string `json:"UNIT_NAME"`
		State    string `json:"STATE"`
		Region   string `json:"REGION"`
		UnitType string `json:"UNIT_TYPE"`
	} `json:"attributes"`
	Geometry *struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"geometry"`
}

type countResponse struct {
	Count int `json:"count"`
}

type pageResponse struct {
	Features []Feature `json:"features"`
}

// Count returns the number of units in the service.
func (b *BoundaryClient) Count(ctx context.Context) (int, error) {
	params := url.Values{
		"where":           {"1=1"},
		"returnCountOnly": {"true"},
		"f":               {"json"},
	}
	var result countResponse
	if err := b.get(ctx, params, &result); err != nil {
		return 0, fmt.Errorf("fetching count: %w", err)
	}
	return result.Count, nil
}

// Page returns up to limit features starting at offset.
func (b *BoundaryClient) Page(ctx context.Context, offset, limit int) ([]Feature, error) {
	params := url.Values{
		"where":             {"1=1"},
		"outFields":         {"UNIT_CODE,UNIT_NAME,STATE,REGION,UNIT_TYPE"},
		"returnGeometry":    {"true"},
		"outSR":             {"4326"},
		"resultOffset":      {strconv.Itoa(offset)},
		"resultRecordCount": {strconv.Itoa(limit)},
		"f":                 {"json"},
	}
	var result pageResponse
	if err := b.get(ctx, params, &result); err != nil {
		return nil, fmt.Errorf("fetching page at %d: %w", offset, err)
	}
	return result.Features, nil
}

// Catalog fetches every unit and converts it into a catalog sorted by name.
func (b *BoundaryClient) Catalog(ctx context.Context) (*park.Catalog, error) {
	count, err := b.Count(ctx)
	if err != nil {
		return nil, err
	}

	var features []Feature
	for offset := 0; offset < count; offset += PageSize {
		page, err := b.Page(ctx, offset, PageSize)
		if err != nil {
			return nil, err
		}
		features = append(features, page...)
	}

	parks := make([]park.Park, 0, len(features))
	for i := range features {
		parks = append(parks, FeatureToPark(&features[i]))
	}
	sort.SliceStable(parks, func(i, j int) bool {
		return parks[i].Name < parks[j].Name
	})
	return &park.Catalog{Parks: parks}, nil
}

// FeatureToPark converts a boundary feature into a catalog park.
func FeatureToPark(f *Feature) park.Park {
	a := f.Attributes
	code := strings.TrimSpace(a.UnitCode)

	unitType := strings.TrimSpace(a.UnitType)
	if unitType == "" {
		unitType = DefaultType
	}

	regionCode := strings.TrimSpace(a.Region)
	region, ok := Regions[regionCode]
	if !ok {
		region = regionCode
	}
	if region == "" {
		region = "Unknown"
	}

	p := park.Park{
		ID:       strings.ToLower(code),
		UnitCode: code,
		Name:     strings.TrimSpace(a.UnitName),
		Type:     unitType,
		Region:   region,
		States:   SplitStates(a.State),
	}
	if f.Geometry != nil {
		p.Lat = f.Geometry.Y
		p.Lng = f.Geometry.X
	}
	return p
}

// SplitStates splits a service STATE value such as "ID, MT; WY".
func SplitStates(raw string) []string {
	states := []string{}
	for _, chunk := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' }) {
		if s := strings.TrimSpace(chunk); s != "" {
			states = append(states, s)
		}
	}
	return states
}

func (b *BoundaryClient) get(ctx context.Context, params url.Values, out any) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.queryURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing body: %w", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
