package internal

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/waypoint/pkg/hostrouter"
)

// Input is the part of a request the route builder reads.
type Input struct {
	// Path is the request path; anything after "?" is ignored.
	Path string
	// Host is the request host, with or without a port.
	Host string
	// Scheme is "http" or "https".
	Scheme string
	// Country is the client's ISO country code, when known.
	Country string
	// AcceptLanguage is the raw Accept-Language header.
	AcceptLanguage string
}

// InputFromRequest builds an Input from r. The scheme honours TLS and
// X-Forwarded-Proto. Country is left empty for the dispatcher's extractor.
func InputFromRequest(r *http.Request) Input {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		proto, _, _ = strings.Cut(proto, ",")
		scheme = strings.ToLower(strings.TrimSpace(proto))
	}

	return Input{
		Path:           r.URL.Path,
		Host:           hostrouter.NormalizeHost(r.Host),
		Scheme:         scheme,
		AcceptLanguage: r.Header.Get("Accept-Language"),
	}
}
