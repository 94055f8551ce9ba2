// Package config loads runtime startup configuration from YAML.
package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 3725
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "notevault"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultRedisHost  = "localhost"
	defaultRedisPort  = 6379
	defaultRedisDB    = 0

	defaultCookieName  = "nv-token"
	defaultSessionTTL  = time.Hour
	defaultRememberTTL = 365 * 24 * time.Hour

	defaultGeoProvider   = "both"
	defaultLookupTimeout = 3 * time.Second
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int
	Env            string // "development" | "production"
	DSN            string
	RedisURL       string
	JWTSecret      string
	AllowedOrigins []string
	Cookie         CookieConfig
	Session        SessionConfig
	RequestInfo    RequestInfoConfig
}

// CookieConfig describes the auth cookie attributes.
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite string // "lax" | "strict"
}

// SessionConfig holds the two cookie lifetimes: the short default and the
// long remember-me duration.
type SessionConfig struct {
	TTL         time.Duration
	RememberTTL time.Duration
}

// RequestInfoConfig toggles the login-time origin enrichments.
type RequestInfoConfig struct {
	Location           bool
	Device             bool
	GeoProvider        string // "headers" | "ipapi" | "both"
	FallbackToLanguage bool
	LookupEndpoint     string
	LookupTimeout      time.Duration
}

type rawAppConfig struct {
	Port           int               `yaml:"port"`
	Env            string            `yaml:"env"`
	DSN            string            `yaml:"dsn"`
	Database       rawDatabaseConfig `yaml:"database"`
	RedisURL       string            `yaml:"redis_url"`
	Redis          rawRedisConfig    `yaml:"redis"`
	JWTSecret      string            `yaml:"jwt_secret"`
	AllowedOrigins []string          `yaml:"allowed_origins"`
	Cookie         rawCookieConfig   `yaml:"cookie"`
	Session        rawSessionConfig  `yaml:"session"`
	RequestInfo    rawRequestInfo    `yaml:"request_info"`
}

type rawDatabaseConfig struct {
	DSN      string            `yaml:"dsn"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	User     string            `yaml:"user"`
	Password string            `yaml:"password"`
	Name     string            `yaml:"name"`
	Charset  string            `yaml:"charset"`
	Loc      string            `yaml:"loc"`
	Params   map[string]string `yaml:"params"`
}

type rawRedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       *int   `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

type rawCookieConfig struct {
	Name     string `yaml:"name"`
	Secure   *bool  `yaml:"secure"`
	SameSite string `yaml:"same_site"`
}

type rawSessionConfig struct {
	TTL         string `yaml:"ttl"`
	RememberTTL string `yaml:"remember_ttl"`
}

type rawRequestInfo struct {
	Location           *bool  `yaml:"location"`
	Device             *bool  `yaml:"device"`
	GeoProvider        string `yaml:"geo_provider"`
	FallbackToLanguage *bool  `yaml:"fallback_to_language"`
	LookupEndpoint     string `yaml:"lookup_endpoint"`
	LookupTimeout      string `yaml:"lookup_timeout"`
}

// Load reads and normalizes the config file. A missing file yields the
// defaults rather than an error, so a bare binary still boots locally.
func Load(configPath string) (*AppConfig, error) {
	raw := rawAppConfig{}

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, fmt.Errorf("read %s: %w", configPath, err)
	}

	cfg := &AppConfig{
		Port:           raw.Port,
		Env:            normalizeEnv(raw.Env),
		DSN:            buildDSN(raw),
		RedisURL:       buildRedisURL(raw),
		JWTSecret:      strings.TrimSpace(raw.JWTSecret),
		AllowedOrigins: normalizeOrigins(raw.AllowedOrigins),
		Cookie: CookieConfig{
			Name:     strings.TrimSpace(raw.Cookie.Name),
			Secure:   raw.Cookie.Secure != nil && *raw.Cookie.Secure,
			SameSite: strings.ToLower(strings.TrimSpace(raw.Cookie.SameSite)),
		},
		Session: SessionConfig{
			TTL:         parseDurationOr(raw.Session.TTL, defaultSessionTTL),
			RememberTTL: parseDurationOr(raw.Session.RememberTTL, defaultRememberTTL),
		},
		RequestInfo: RequestInfoConfig{
			Location:           boolOr(raw.RequestInfo.Location, true),
			Device:             boolOr(raw.RequestInfo.Device, true),
			GeoProvider:        strings.ToLower(strings.TrimSpace(raw.RequestInfo.GeoProvider)),
			FallbackToLanguage: boolOr(raw.RequestInfo.FallbackToLanguage, true),
			LookupEndpoint:     strings.TrimSpace(raw.RequestInfo.LookupEndpoint),
			LookupTimeout:      parseDurationOr(raw.RequestInfo.LookupTimeout, defaultLookupTimeout),
		},
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Cookie.Name == "" {
		cfg.Cookie.Name = defaultCookieName
	}
	if cfg.Cookie.SameSite != "strict" {
		cfg.Cookie.SameSite = "lax"
	}
	switch cfg.RequestInfo.GeoProvider {
	case "headers", "ipapi", "both":
	default:
		cfg.RequestInfo.GeoProvider = defaultGeoProvider
	}

	return cfg, nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return c.Env != "production"
}

func normalizeEnv(env string) string {
	e := strings.ToLower(strings.TrimSpace(env))
	if e == "prod" || e == "production" {
		return "production"
	}
	if e == "" {
		return defaultEnv
	}
	return e
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if v := strings.TrimSpace(o); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// buildDSN assembles the MySQL DSN from either the literal dsn field or the
// structured database block.
func buildDSN(raw rawAppConfig) string {
	if v := strings.TrimSpace(raw.DSN); v != "" {
		return v
	}
	if v := strings.TrimSpace(raw.Database.DSN); v != "" {
		return v
	}

	db := raw.Database
	host := strings.TrimSpace(db.Host)
	if host == "" {
		host = defaultDBHost
	}
	port := db.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := strings.TrimSpace(db.User)
	if user == "" {
		user = defaultDBUser
	}
	password := db.Password
	if password == "" {
		password = defaultDBPassword
	}
	name := strings.TrimSpace(db.Name)
	if name == "" {
		name = defaultDBName
	}
	charset := strings.TrimSpace(db.Charset)
	if charset == "" {
		charset = defaultDBCharset
	}
	loc := strings.TrimSpace(db.Loc)
	if loc == "" {
		loc = defaultDBLoc
	}

	params := neturl.Values{}
	for k, v := range db.Params {
		if key, val := strings.TrimSpace(k), strings.TrimSpace(v); key != "" && val != "" {
			params.Set(key, val)
		}
	}
	if params.Get("charset") == "" {
		params.Set("charset", charset)
	}
	if params.Get("parseTime") == "" {
		params.Set("parseTime", "True")
	}
	if params.Get("loc") == "" {
		params.Set("loc", loc)
	}

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s",
		user, password, net.JoinHostPort(host, strconv.Itoa(port)), name, params.Encode())
}

// buildRedisURL assembles the Redis URL from either the literal field or the
// structured redis block.
func buildRedisURL(raw rawAppConfig) string {
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		return v
	}
	if v := strings.TrimSpace(raw.Redis.URL); v != "" {
		return v
	}

	r := raw.Redis
	host := strings.TrimSpace(r.Host)
	if host == "" {
		host = defaultRedisHost
	}
	port := r.Port
	if port == 0 {
		port = defaultRedisPort
	}
	db := defaultRedisDB
	if r.DB != nil {
		db = *r.DB
	}
	scheme := "redis"
	if r.TLS {
		scheme = "rediss"
	}

	u := neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + strconv.Itoa(db),
	}
	if r.Username != "" || r.Password != "" {
		u.User = neturl.UserPassword(r.Username, r.Password)
	}
	return u.String()
}

func parseDurationOr(raw string, def time.Duration) time.Duration {
	v := strings.TrimSpace(raw)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
