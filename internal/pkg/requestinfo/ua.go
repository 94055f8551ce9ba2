package requestinfo

import (
	"regexp"
	"strings"
)

// Device categories.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// DeviceInfo is the heuristic classification of a user-agent string.
// Browser and OS are empty when no rule matched.
type DeviceInfo struct {
	Browser string
	OS      string
	Device  string
	IsBot   bool
}

var botPattern = regexp.MustCompile(`(?i)bot|crawler|spider|scraper|curl|wget|python|java|go-http|okhttp`)

var mobileKeywords = []string{"mobile", "android", "iphone", "ipod", "blackberry", "windows phone"}
var tabletKeywords = []string{"tablet", "ipad", "kindle", "silk"}

// ParseUserAgent classifies a user-agent string with an ordered rule table.
// This is intentionally a keyword matcher, not a real user-agent parser; rule
// order is part of the contract (the mobile check runs before the tablet
// check, so "android tablet" strings classify as mobile).
func ParseUserAgent(userAgent string) DeviceInfo {
	ua := strings.ToLower(userAgent)

	info := DeviceInfo{
		Device: DeviceDesktop,
		IsBot:  botPattern.MatchString(userAgent),
	}

	if containsAny(ua, mobileKeywords) {
		info.Device = DeviceMobile
	} else if containsAny(ua, tabletKeywords) {
		info.Device = DeviceTablet
	}

	switch {
	case strings.Contains(ua, "chrome") && !strings.Contains(ua, "edge"):
		info.Browser = "Chrome"
	case strings.Contains(ua, "firefox"):
		info.Browser = "Firefox"
	case strings.Contains(ua, "safari") && !strings.Contains(ua, "chrome"):
		info.Browser = "Safari"
	case strings.Contains(ua, "edge"):
		info.Browser = "Edge"
	case strings.Contains(ua, "opera"):
		info.Browser = "Opera"
	}

	switch {
	case strings.Contains(ua, "windows"):
		info.OS = "Windows"
	case strings.Contains(ua, "mac"):
		info.OS = "macOS"
	case strings.Contains(ua, "linux"):
		info.OS = "Linux"
	case strings.Contains(ua, "android"):
		info.OS = "Android"
	case strings.Contains(ua, "ios"), strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"):
		info.OS = "iOS"
	}

	return info
}

// IsBot reports whether the user-agent string looks like an automated client.
func IsBot(userAgent string) bool {
	return botPattern.MatchString(userAgent)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
