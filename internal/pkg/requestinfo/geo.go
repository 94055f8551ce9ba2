package requestinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// Location sources, in the order the resolver chain tries them.
const (
	SourceCloudflare     = "cloudflare"
	SourceVercel         = "vercel"
	SourceCloudFront     = "cloudfront"
	SourceIPAPI          = "ipapi"
	SourceAcceptLanguage = "accept-language"
)

// Location is one resolved geolocation signal. Fields other than Source may
// be empty depending on how much the winning provider knew.
type Location struct {
	Country   string
	City      string
	Region    string
	Latitude  float64
	Longitude float64
	Source    string
}

// locationFromHeaders reads CDN/edge-platform geo headers. The first provider
// with a country value wins; city values arrive percent-encoded.
func locationFromHeaders(h http.Header) *Location {
	if country := h.Get("cf-ipcountry"); country != "" {
		return &Location{
			Country: country,
			City:    percentDecode(h.Get("cf-ipcity")),
			Region:  h.Get("cf-region"),
			Source:  SourceCloudflare,
		}
	}

	if country := h.Get("x-vercel-ip-country"); country != "" {
		return &Location{
			Country: country,
			City:    percentDecode(h.Get("x-vercel-ip-city")),
			Region:  h.Get("x-vercel-ip-country-region"),
			Source:  SourceVercel,
		}
	}

	if country := h.Get("cloudfront-viewer-country"); country != "" {
		return &Location{Country: country, Source: SourceCloudFront}
	}

	return nil
}

// lookupResponse is the external geolocation service payload. The service
// reports failures in-band with an "error" field.
type lookupResponse struct {
	CountryCode string  `json:"country_code"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Error       bool    `json:"error"`
	Reason      string  `json:"reason"`
}

// locationFromIP asks the external lookup service about a public address.
// Every failure mode degrades to nil; nothing here may fail the request.
func (c *Collector) locationFromIP(ctx context.Context, ip string) *Location {
	if ip == Unknown || isPrivateIP(ip) {
		return nil
	}

	endpoint := fmt.Sprintf("%s/%s/json/", strings.TrimRight(c.opts.LookupEndpoint, "/"), ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Warn("geo lookup request build failed", zap.String("ip", ip), zap.Error(err))
		return nil
	}
	req.Header.Set("User-Agent", lookupClientID)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("geo lookup failed", zap.String("ip", ip), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("geo lookup non-2xx", zap.String("ip", ip), zap.Int("status", resp.StatusCode))
		return nil
	}

	var data lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.logger.Warn("geo lookup decode failed", zap.String("ip", ip), zap.Error(err))
		return nil
	}
	if data.Error {
		c.logger.Warn("geo lookup service error", zap.String("ip", ip), zap.String("reason", data.Reason))
		return nil
	}

	return &Location{
		Country:   data.CountryCode,
		City:      data.City,
		Region:    data.Region,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		Source:    SourceIPAPI,
	}
}

// locationFromLanguage derives a coarse region hint from the primary
// Accept-Language tag. Requires a region subtag ("en-US" -> "US").
func locationFromLanguage(h http.Header) *Location {
	acceptLanguage := h.Get("accept-language")
	if acceptLanguage == "" {
		return nil
	}

	parts := strings.Split(strings.Split(acceptLanguage, ",")[0], "-")
	if len(parts) < 2 {
		return nil
	}

	return &Location{
		Region: strings.ToUpper(strings.TrimSpace(parts[1])),
		Source: SourceAcceptLanguage,
	}
}

// isPrivateIP covers the ranges the external lookup would refuse anyway.
func isPrivateIP(ip string) bool {
	return strings.HasPrefix(ip, "192.168.") ||
		strings.HasPrefix(ip, "10.") ||
		ip == "127.0.0.1"
}

// renderLocation formats a location for display. Missing segments render as
// "Unknown <field>" so the summary never contains blank comma runs; the city
// is capitalized since some providers deliver it lowercased.
func renderLocation(loc *Location) string {
	city := "Unknown city"
	if loc.City != "" {
		city = capitalize(loc.City)
	}
	region := "Unknown region"
	if loc.Region != "" {
		region = loc.Region
	}
	country := "Unknown country"
	if loc.Country != "" {
		country = loc.Country
	}
	return fmt.Sprintf("%s, %s, %s", city, region, country)
}

func percentDecode(s string) string {
	if s == "" {
		return ""
	}
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func capitalize(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
