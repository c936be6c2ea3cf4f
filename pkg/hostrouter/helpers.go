package hostrouter

import (
	"net/http"
	"strings"
)

// NormalizeHost strips the port and lowercases a Host header value.
// Bracketed IPv6 literals keep their brackets.
//
//	"Example.COM:8080" -> "example.com"
//	"[::1]:8080"       -> "[::1]"
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if idx := strings.LastIndex(host, ":"); idx != -1 && !strings.Contains(host[idx:], "]") {
		host = host[:idx]
	}
	return strings.TrimSuffix(strings.ToLower(host), ".")
}

// Domain returns the normalized host of the request.
func Domain(r *http.Request) string {
	return NormalizeHost(r.Host)
}

// Subdomain returns the part of host in front of base, or "" when host is
// base itself or lies outside it.
//
//	Subdomain("bar.foo.example.com", "example.com") -> "bar.foo"
func Subdomain(host, base string) string {
	host = NormalizeHost(host)
	base = NormalizeHost(base)
	if base == "" || host == base {
		return ""
	}
	sub, ok := strings.CutSuffix(host, "."+base)
	if !ok {
		return ""
	}
	return sub
}

// SubdomainLabels splits the subdomain of host under base into its labels,
// left to right. With an empty base every label of host is returned.
//
//	SubdomainLabels("es.blog.example.com", "example.com") -> ["es", "blog"]
func SubdomainLabels(host, base string) []string {
	var sub string
	if strings.TrimSpace(base) == "" {
		sub = NormalizeHost(host)
	} else {
		sub = Subdomain(host, base)
	}

	var labels []string
	for label := range strings.SplitSeq(sub, ".") {
		if label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
