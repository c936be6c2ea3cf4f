// Package hostrouter normalizes hosts, extracts subdomain labels and routes
// requests by Host header.
//
// Subdomain labels drive module and language selection:
//
//	hostrouter.SubdomainLabels("es.shop.example.com:8080", "example.com") // ["es", "shop"]
//
// Router serves several applications from one listener:
//
//	router := hostrouter.New(hostrouter.Routes{
//		"api.example.com": apiHandler,
//		"*.example.com":   siteHandler,
//	}, fallback)
//
// Exact patterns take priority over wildcards. A wildcard matches any depth
// below its domain, the most specific one winning. Matching ignores case and
// port.
package hostrouter
