package utils

import (
	"regexp"
	"strings"
)

var domainLabelRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)

// IsValidDomainFormat checks RFC 1035 label rules plus the 253 character
// total-length limit. It accepts a trailing dot (absolute name) but does
// not accept bare TLDs.
func IsValidDomainFormat(domain string) bool {
	domain = strings.TrimSuffix(strings.TrimSpace(domain), ".")
	if domain == "" || len(domain) > 253 {
		return false
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if !domainLabelRegex.MatchString(label) {
			return false
		}
	}
	return true
}

// NormalizeDomain lowercases and strips surrounding whitespace and the
// trailing dot of an absolute DNS name.
func NormalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(domain), "."))
}

// ParentDomain strips the leftmost label: "a.b.example.com" -> "b.example.com".
// Returns an empty string when no parent remains.
func ParentDomain(domain string) string {
	idx := strings.Index(domain, ".")
	if idx < 0 {
		return ""
	}
	return domain[idx+1:]
}
