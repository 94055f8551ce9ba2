package requestinfo

import (
	"net/http"
	"testing"
)

func TestLocationFromHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    *Location
	}{
		{
			name: "cloudflare with encoded city",
			headers: map[string]string{
				"cf-ipcountry": "US",
				"cf-ipcity":    "New%20York",
				"cf-region":    "NY",
			},
			want: &Location{Country: "US", City: "New York", Region: "NY", Source: SourceCloudflare},
		},
		{
			name: "cloudflare wins over vercel",
			headers: map[string]string{
				"cf-ipcountry":        "US",
				"x-vercel-ip-country": "DE",
			},
			want: &Location{Country: "US", Source: SourceCloudflare},
		},
		{
			name: "vercel",
			headers: map[string]string{
				"x-vercel-ip-country":        "DE",
				"x-vercel-ip-city":           "Berlin",
				"x-vercel-ip-country-region": "BE",
			},
			want: &Location{Country: "DE", City: "Berlin", Region: "BE", Source: SourceVercel},
		},
		{
			name: "cloudfront country only",
			headers: map[string]string{
				"cloudfront-viewer-country": "JP",
			},
			want: &Location{Country: "JP", Source: SourceCloudFront},
		},
		{
			name: "city without country yields nothing",
			headers: map[string]string{
				"cf-ipcity": "Paris",
			},
			want: nil,
		},
		{
			name:    "no headers",
			headers: map[string]string{},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			got := locationFromHeaders(h)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("locationFromHeaders() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("locationFromHeaders() = nil, want %+v", tt.want)
			}
			if *got != *tt.want {
				t.Errorf("locationFromHeaders() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLocationFromLanguage(t *testing.T) {
	tests := []struct {
		name           string
		acceptLanguage string
		wantRegion     string
		wantNil        bool
	}{
		{"with region subtag", "en-US,en;q=0.9", "US", false},
		{"lowercase region uppercased", "pt-br", "BR", false},
		{"no region subtag", "en", "", true},
		{"empty header", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.acceptLanguage != "" {
				h.Set("accept-language", tt.acceptLanguage)
			}
			got := locationFromLanguage(h)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("locationFromLanguage() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("locationFromLanguage() = nil, want location")
			}
			if got.Region != tt.wantRegion || got.Source != SourceAcceptLanguage {
				t.Errorf("locationFromLanguage() = %+v, want region %q", got, tt.wantRegion)
			}
		})
	}
}

func TestRenderLocation(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want string
	}{
		{
			name: "full location capitalizes city",
			loc:  Location{City: "new york", Region: "NY", Country: "US"},
			want: "New York, NY, US",
		},
		{
			name: "country only",
			loc:  Location{Country: "JP"},
			want: "Unknown city, Unknown region, JP",
		},
		{
			name: "region only",
			loc:  Location{Region: "US"},
			want: "Unknown city, US, Unknown country",
		},
		{
			name: "empty location",
			loc:  Location{},
			want: "Unknown city, Unknown region, Unknown country",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderLocation(&tt.loc); got != tt.want {
				t.Errorf("renderLocation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"192.168.1.10", true},
		{"10.0.0.1", true},
		{"127.0.0.1", true},
		{"203.0.113.7", false},
		{"8.8.8.8", false},
	}

	for _, tt := range tests {
		if got := isPrivateIP(tt.ip); got != tt.want {
			t.Errorf("isPrivateIP(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}
}
