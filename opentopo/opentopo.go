// Package opentopo fetches elevation grids from the OpenTopography global
// DEM API. It is the network-facing collaborator of the ridgeline pipeline;
// the core never performs I/O itself.
package opentopo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	ridgeline "github.com/tjbutt92/map-elevation-desire"
)

const (
	DefaultBaseURL = "https://portal.opentopography.org/API/globaldem"
	DefaultDEMType = "SRTMGL1"
)

var (
	fetchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opentopo_fetches_total",
		Help: "The total number of DEM fetches from the OpenTopography API",
	})
	fetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opentopo_fetch_errors_total",
		Help: "The total number of failed DEM fetches",
	})
	gridCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opentopo_grid_cache_hits_total",
		Help: "The total number of hits on the grid cache",
	})
)

// A Client fetches DEMs from the OpenTopography global DEM API. The API key
// and endpoint are explicit; the client never reads ambient configuration.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	demType    string
	cacheSize  int
	gridCache  *lru.Cache[ridgeline.Extent, *ridgeline.MemGrid]
}

// A ClientOption sets an option on a Client.
type ClientOption func(*Client)

// NewClient returns a new Client with the given API key and options.
func NewClient(apiKey string, options ...ClientOption) (*Client, error) {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		demType:    DefaultDEMType,
		cacheSize:  8,
	}
	for _, option := range options {
		option(c)
	}

	var err error
	c.gridCache, err = lru.New[ridgeline.Extent, *ridgeline.MemGrid](c.cacheSize)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithCacheSize(cacheSize int) ClientOption {
	return func(c *Client) {
		c.cacheSize = cacheSize
	}
}

func WithDEMType(demType string) ClientOption {
	return func(c *Client) {
		c.demType = demType
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// FetchGrid returns the elevation grid covering extent, fetching it from the
// API or returning a cached copy.
func (c *Client) FetchGrid(ctx context.Context, extent ridgeline.Extent) (*ridgeline.MemGrid, error) {
	if grid, ok := c.gridCache.Get(extent); ok {
		gridCacheHits.Inc()
		return grid, nil
	}

	fetchesTotal.Inc()
	grid, err := c.fetchGrid(ctx, extent)
	if err != nil {
		fetchErrorsTotal.Inc()
		return nil, err
	}
	c.gridCache.Add(extent, grid)
	return grid, nil
}

func (c *Client) fetchGrid(ctx context.Context, extent ridgeline.Extent) (*ridgeline.MemGrid, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(extent), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s: %s", c.baseURL, resp.Status, body)
	}
	return ridgeline.ReadGeoTIFFGrid(body)
}

func (c *Client) requestURL(extent ridgeline.Extent) string {
	query := url.Values{}
	query.Set("demtype", c.demType)
	query.Set("south", formatCoord(extent.LatMin))
	query.Set("north", formatCoord(extent.LatMax))
	query.Set("west", formatCoord(extent.LonMin))
	query.Set("east", formatCoord(extent.LonMax))
	query.Set("outputFormat", "GTiff")
	query.Set("API_Key", c.apiKey)
	return c.baseURL + "?" + query.Encode()
}

func formatCoord(coord float64) string {
	return strconv.FormatFloat(coord, 'f', -1, 64)
}
