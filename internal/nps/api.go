// Package nps fetches park data from the NPS data API and the NPS boundary
// feature service.
package nps

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ironicbadger/ktz-usa-stamps/internal/park"
)

const (
	defaultAPIURL = "https://developer.nps.gov/api/v1/parks"

	// BatchSize is the number of park codes sent per API request.
	BatchSize    = 10
	defaultPause = 200 * time.Millisecond
)

// Client fetches park details from the NPS data API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	pause      time.Duration

	// Overridable URL for testing.
	apiURL string
}

// NewClient creates an NPS API client with the given key.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("NPS_API_KEY is required")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		pause:      defaultPause,
		apiURL:     defaultAPIURL,
	}, nil
}

// APIPark is the subset of an NPS API park record the passport uses.
type APIPark struct {
	ParkCode string     `json:"parkCode"`
	URL      string     `json:"url"`
	Images   []APIImage `json:"images"`
}

// APIImage is one entry of a park's image list.
type APIImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
	Credit  string `json:"credit"`
	AltText string `json:"altText"`
}

type parksResponse struct {
	Data []APIPark `json:"data"`
}

// FetchParks looks up a batch of lower-cased park codes.
func (c *Client) FetchParks(ctx context.Context, codes []string) (parks []APIPark, err error) {
	params := url.Values{
		"parkCode": {strings.Join(codes, ",")},
		"fields":   {"images"},
		"limit":    {strconv.Itoa(max(len(codes), 1))},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing body: %w", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var result parksResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return result.Data, nil
}

// Enrich sets hero images and NPS links on catalog parks, querying the API
// in batches. Parks the API has no images for are left alone. It returns the
// number of parks updated.
func (c *Client) Enrich(ctx context.Context, cat *park.Catalog) (int, error) {
	index := make(map[string]int)
	var codes []string
	for i := range cat.Parks {
		code := strings.ToLower(strings.TrimSpace(cat.Parks[i].UnitCode))
		if code == "" {
			continue
		}
		if _, ok := index[code]; ok {
			continue
		}
		index[code] = i
		codes = append(codes, code)
	}

	updated := 0
	for start := 0; start < len(codes); start += BatchSize {
		batch := codes[start:min(start+BatchSize, len(codes))]
		results, err := c.FetchParks(ctx, batch)
		if err != nil {
			return updated, fmt.Errorf("fetching batch %d: %w", start/BatchSize+1, err)
		}

		for _, r := range results {
			i, ok := index[strings.ToLower(strings.TrimSpace(r.ParkCode))]
			if !ok || len(r.Images) == 0 {
				continue
			}
			img := r.Images[0]
			target := &cat.Parks[i]
			target.HeroImage = &park.HeroImage{
				URL:     img.URL,
				Caption: img.Caption,
				Credit:  img.Credit,
				Alt:     img.AltText,
			}
			if r.URL != "" {
				target.NPSURL = r.URL
			}
			updated++
		}
		slog.Debug("enriched batch", "codes", len(batch), "results", len(results))

		if err := sleep(ctx, c.pause); err != nil {
			return updated, err
		}
	}
	return updated, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
