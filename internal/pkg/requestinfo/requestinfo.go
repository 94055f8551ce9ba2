// Package requestinfo extracts a per-request origin summary: client IP,
// user agent, and optional geolocation and device enrichments. The summary
// strings are what session records snapshot at login.
package requestinfo

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const lookupClientID = "notevault-request-info/1.0"

// Geo provider modes.
const (
	GeoHeaders = "headers"
	GeoIPAPI   = "ipapi"
	GeoBoth    = "both"
)

const defaultLookupEndpoint = "https://ipapi.co"
const defaultLookupTimeout = 3 * time.Second

// Options controls which enrichments Collect performs.
type Options struct {
	IncludeLocation    bool
	IncludeDevice      bool
	GeoProvider        string // GeoHeaders | GeoIPAPI | GeoBoth
	FallbackToLanguage bool
	LookupEndpoint     string
	LookupTimeout      time.Duration
}

// Info is the computed origin of one request. Location and Device are nil
// when their enrichment step did not run or produced nothing.
type Info struct {
	IP        string
	UserAgent string
	Location  *string
	Device    *string
}

// Collector resolves request origins. The embedded HTTP client bounds the
// only network call in the chain, so a hung lookup upstream can never stall
// a login past the configured timeout.
type Collector struct {
	opts   Options
	client *http.Client
	logger *zap.Logger
}

func NewCollector(opts Options, logger *zap.Logger) *Collector {
	if opts.GeoProvider == "" {
		opts.GeoProvider = GeoBoth
	}
	if opts.LookupEndpoint == "" {
		opts.LookupEndpoint = defaultLookupEndpoint
	}
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = defaultLookupTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		opts:   opts,
		client: &http.Client{Timeout: opts.LookupTimeout},
		logger: logger,
	}
}

// Collect computes the origin summary for a request. Location resolution
// tries CDN headers, then the external lookup, then the Accept-Language
// hint, stopping at the first source that produces anything.
func (c *Collector) Collect(r *http.Request) Info {
	info := Info{
		IP:        ClientIP(r.Header),
		UserAgent: RawUserAgent(r.Header),
	}

	if c.opts.IncludeLocation {
		var loc *Location
		if c.opts.GeoProvider == GeoHeaders || c.opts.GeoProvider == GeoBoth {
			loc = locationFromHeaders(r.Header)
		}
		if loc == nil && (c.opts.GeoProvider == GeoIPAPI || c.opts.GeoProvider == GeoBoth) {
			loc = c.locationFromIP(r.Context(), info.IP)
		}
		if loc == nil && c.opts.FallbackToLanguage {
			loc = locationFromLanguage(r.Header)
		}
		if loc != nil {
			rendered := renderLocation(loc)
			info.Location = &rendered
		}
	}

	if c.opts.IncludeDevice && info.UserAgent != Unknown {
		rendered := renderDevice(ParseUserAgent(info.UserAgent))
		info.Device = &rendered
	}

	return info
}

func renderDevice(d DeviceInfo) string {
	device := d.Device
	if device == "" {
		device = "Unknown device"
	}
	browser := d.Browser
	if browser == "" {
		browser = "Unknown browser"
	}
	return device + ", " + browser
}
