// Package httpmeta derives the request attributes recorded in the login
// audit trail: client IP and a coarse browser/OS/device classification of
// the User-Agent header.
package httpmeta

import (
	"net"
	"net/http"
	"strings"

	"github.com/sibe/identity/domain"
)

// Extract builds the audit metadata for one request.
func Extract(r *http.Request) domain.RequestMeta {
	ua := r.UserAgent()
	return domain.RequestMeta{
		IP:      ClientIP(r),
		Browser: browser(ua),
		OS:      operatingSystem(ua),
		Device:  device(ua),
	}
}

// ClientIP returns the originating client address, honoring the standard
// proxy headers (first X-Forwarded-For entry wins).
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if rip := r.Header.Get("X-Real-Ip"); rip != "" {
		return rip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// The classification below is intentionally coarse; the audit log needs a
// human-readable hint, not a full UA database. Order matters: Edge and
// Opera advertise Chrome, Chrome advertises Safari.
func browser(ua string) string {
	switch {
	case strings.Contains(ua, "Edg"):
		return "Edge"
	case strings.Contains(ua, "OPR"), strings.Contains(ua, "Opera"):
		return "Opera"
	case strings.Contains(ua, "Chrome"):
		return "Chrome"
	case strings.Contains(ua, "Firefox"):
		return "Firefox"
	case strings.Contains(ua, "Safari"):
		return "Safari"
	}
	return "Unknown"
}

func operatingSystem(ua string) string {
	switch {
	case strings.Contains(ua, "Android"):
		return "Android"
	// iPads advertise "like Mac OS X", so Apple mobile comes first.
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"), strings.Contains(ua, "iOS"):
		return "iOS"
	case strings.Contains(ua, "Windows"):
		return "Windows"
	case strings.Contains(ua, "Mac OS"):
		return "macOS"
	case strings.Contains(ua, "Linux"):
		return "Linux"
	}
	return "Unknown"
}

func device(ua string) string {
	switch {
	case strings.Contains(ua, "Tablet"), strings.Contains(ua, "iPad"):
		return "Tablet"
	case strings.Contains(ua, "Mobile"):
		return "Mobile"
	}
	return "Desktop"
}
