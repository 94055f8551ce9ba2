package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newRequest(t *testing.T, headers map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

func TestCollectUsesCDNHeadersFirst(t *testing.T) {
	lookupHit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lookupHit = true
		w.Write([]byte(`{"country_code":"DE"}`))
	}))
	defer srv.Close()

	c := NewCollector(Options{
		IncludeLocation: true,
		GeoProvider:     GeoBoth,
		LookupEndpoint:  srv.URL,
	}, nil)

	req := newRequest(t, map[string]string{
		"x-forwarded-for": "203.0.113.7",
		"cf-ipcountry":    "US",
		"cf-ipcity":       "New%20York",
		"cf-region":       "NY",
	})

	info := c.Collect(req)
	if info.IP != "203.0.113.7" {
		t.Errorf("IP = %q, want 203.0.113.7", info.IP)
	}
	if info.Location == nil || *info.Location != "New York, NY, US" {
		t.Errorf("Location = %v, want New York, NY, US", info.Location)
	}
	if lookupHit {
		t.Error("external lookup ran despite CDN headers being present")
	}
}

func TestCollectFallsBackToLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != lookupClientID {
			t.Errorf("lookup User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`{"country_code":"DE","city":"berlin","region":"Berlin"}`))
	}))
	defer srv.Close()

	c := NewCollector(Options{
		IncludeLocation: true,
		GeoProvider:     GeoBoth,
		LookupEndpoint:  srv.URL,
	}, nil)

	req := newRequest(t, map[string]string{"x-forwarded-for": "203.0.113.7"})
	info := c.Collect(req)
	if info.Location == nil || *info.Location != "Berlin, Berlin, DE" {
		t.Errorf("Location = %v, want Berlin, Berlin, DE", info.Location)
	}
}

func TestCollectSkipsLookupForPrivateIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("lookup should not run for private addresses")
	}))
	defer srv.Close()

	c := NewCollector(Options{
		IncludeLocation:    true,
		GeoProvider:        GeoBoth,
		FallbackToLanguage: true,
		LookupEndpoint:     srv.URL,
	}, nil)

	req := newRequest(t, map[string]string{
		"x-forwarded-for": "192.168.1.10",
		"accept-language": "en-US,en;q=0.9",
	})

	info := c.Collect(req)
	if info.Location == nil || *info.Location != "Unknown city, US, Unknown country" {
		t.Errorf("Location = %v, want accept-language fallback", info.Location)
	}
}

func TestCollectSwallowsLookupFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewCollector(Options{
		IncludeLocation: true,
		GeoProvider:     GeoIPAPI,
		LookupEndpoint:  srv.URL,
	}, nil)

	req := newRequest(t, map[string]string{"x-forwarded-for": "203.0.113.7"})
	info := c.Collect(req)
	if info.Location != nil {
		t.Errorf("Location = %v, want nil after lookup failure", info.Location)
	}
}

func TestCollectServiceReportedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":true,"reason":"RateLimited"}`))
	}))
	defer srv.Close()

	c := NewCollector(Options{
		IncludeLocation: true,
		GeoProvider:     GeoIPAPI,
		LookupEndpoint:  srv.URL,
	}, nil)

	req := newRequest(t, map[string]string{"x-forwarded-for": "203.0.113.7"})
	if info := c.Collect(req); info.Location != nil {
		t.Errorf("Location = %v, want nil when service reports an error", info.Location)
	}
}

func TestCollectDevice(t *testing.T) {
	c := NewCollector(Options{IncludeDevice: true}, nil)

	req := newRequest(t, map[string]string{
		"user-agent": "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Version/17.0 Mobile Safari/604.1",
	})
	info := c.Collect(req)
	if info.Device == nil || *info.Device != "mobile, Safari" {
		t.Errorf("Device = %v, want mobile, Safari", info.Device)
	}

	// Unknown user agent produces no device summary.
	info = c.Collect(newRequest(t, nil))
	if info.Device != nil {
		t.Errorf("Device = %v, want nil for missing user agent", info.Device)
	}
}

func TestCollectDisabledEnrichments(t *testing.T) {
	c := NewCollector(Options{}, nil)

	req := newRequest(t, map[string]string{
		"cf-ipcountry": "US",
		"user-agent":   "curl/8.4.0",
	})
	info := c.Collect(req)
	if info.Location != nil {
		t.Errorf("Location = %v, want nil when disabled", info.Location)
	}
	if info.Device != nil {
		t.Errorf("Device = %v, want nil when disabled", info.Device)
	}
	if info.UserAgent != "curl/8.4.0" {
		t.Errorf("UserAgent = %q", info.UserAgent)
	}
}

func TestCollectHeadersOnlyProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("lookup should not run in headers-only mode")
	}))
	defer srv.Close()

	c := NewCollector(Options{
		IncludeLocation: true,
		GeoProvider:     GeoHeaders,
		LookupEndpoint:  srv.URL,
	}, nil)

	req := newRequest(t, map[string]string{"x-forwarded-for": "203.0.113.7"})
	if info := c.Collect(req); info.Location != nil {
		t.Errorf("Location = %v, want nil", info.Location)
	}
}
