package links

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Extract returns the valid http(s) links found in text, in order of appearance.
// Duplicates are kept. Invalid candidates are dropped silently.
func Extract(text string) []string {
	candidates := urlPattern.FindAllString(text, -1)
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if IsValid(c) {
			out = append(out, c)
		}
	}
	return out
}

// IsValid reports whether raw is an http(s) URL whose host is not loopback,
// private-range, or "localhost".
func IsValid(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" || host == "localhost" {
		return false
	}
	if ip := net.ParseIP(host); ip != nil {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() {
			return false
		}
	}
	return true
}

// Dedupe returns in without repeated entries, keeping first occurrences.
func Dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
