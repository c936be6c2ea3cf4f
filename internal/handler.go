package internal

// Handler declares routes that bypass controller dispatch, such as feeds,
// webhooks or a sitemap.
//
//	type SitemapHandler struct{ urls *waypoint.URLs }
//
//	func (h *SitemapHandler) Routes(r waypoint.Router) {
//	    r.GET("/sitemap.xml", h.render)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc serves a request. A returned error goes to the App's error
// handler unless a response was already written.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc. Global middleware also wraps dispatched
// controller actions.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers and actions.
type ErrorHandler func(Context, error) error
