package utils

import (
	"strings"

	ua "github.com/mssola/user_agent"
)

// DeviceInfo holds parsed information from a User-Agent string
type DeviceInfo struct {
	DeviceType string `json:"device_type"` // mobile, tablet, desktop
	OS         string `json:"os"`
	Browser    string `json:"browser"`
	Platform   string `json:"platform"` // android, ios, web
	Raw        string `json:"raw"`
}

// String renders the info for the push_tokens.device_info column
func (d DeviceInfo) String() string {
	parts := []string{d.DeviceType, d.OS}
	if d.Browser != "" && d.Browser != "Unknown" {
		parts = append(parts, d.Browser)
	}
	return strings.Join(parts, "; ")
}

// ParseUserAgent parses a User-Agent string and extracts device information
func ParseUserAgent(userAgent string) DeviceInfo {
	if userAgent == "" || userAgent == "Unknown" {
		return DeviceInfo{DeviceType: "unknown", OS: "Unknown", Browser: "Unknown", Platform: "web", Raw: userAgent}
	}

	// The mobile app's HTTP stacks send bare client identifiers that the
	// parser does not classify.
	lower := strings.ToLower(userAgent)
	switch {
	case strings.HasPrefix(lower, "okhttp"), strings.HasPrefix(lower, "dart:io") && strings.Contains(lower, "android"):
		return DeviceInfo{DeviceType: "mobile", OS: "Android", Browser: "Unknown", Platform: "android", Raw: userAgent}
	case strings.HasPrefix(lower, "cfnetwork"), strings.Contains(lower, "darwin/"):
		return DeviceInfo{DeviceType: "mobile", OS: "iOS", Browser: "Unknown", Platform: "ios", Raw: userAgent}
	}

	parser := ua.New(userAgent)
	info := DeviceInfo{
		Raw:      userAgent,
		OS:       osName(parser),
		Platform: platform(parser),
	}
	if name, _ := parser.Browser(); name != "" {
		info.Browser = name
	} else {
		info.Browser = "Unknown"
	}

	switch {
	case !parser.Mobile():
		info.DeviceType = "desktop"
	case isTablet(lower):
		info.DeviceType = "tablet"
	default:
		info.DeviceType = "mobile"
	}
	return info
}

func isTablet(lowerUA string) bool {
	for _, indicator := range []string{"ipad", "tablet", "kindle", "sm-t", "nexus 7", "nexus 9", "nexus 10"} {
		if strings.Contains(lowerUA, indicator) {
			return true
		}
	}
	return false
}

func osName(parser *ua.UserAgent) string {
	info := parser.OSInfo()
	if info.Name == "" {
		return "Unknown"
	}
	if info.Version != "" {
		return info.Name + " " + info.Version
	}
	return info.Name
}

// platform maps the OS to a push platform; anything not Android or iOS is web
func platform(parser *ua.UserAgent) string {
	name := strings.ToLower(parser.OSInfo().Name)
	switch {
	case strings.Contains(name, "android"):
		return "android"
	case strings.Contains(name, "ios"), strings.Contains(name, "iphone"), strings.Contains(name, "ipad"):
		return "ios"
	}
	return "web"
}
