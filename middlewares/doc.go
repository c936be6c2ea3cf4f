// Package middlewares provides HTTP middleware for waypoint applications.
//
// # Request ID
//
// RequestID keeps an upstream X-Request-ID or X-Correlation-ID header or
// generates a UUID, and echoes it in the response:
//
//	app := waypoint.New(
//	    waypoint.WithLogger("web", middlewares.RequestIDExtractor()),
//	    waypoint.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover turns panics in declared route handlers into *waypoint.PanicError.
// Dispatched actions are recovered by the dispatcher itself.
//
//	waypoint.WithErrorHandler(func(c waypoint.Context, err error) error {
//	    if waypoint.IsPanicError(err) {
//	        return c.String(http.StatusInternalServerError, "Internal Server Error")
//	    }
//	    return c.String(http.StatusInternalServerError, err.Error())
//	})
//
// # Language
//
// Language resolves the response language from the URL (when language
// redirection is on), the "lang" cookie and the Accept-Language header, in
// that order, and sets Content-Language:
//
//	waypoint.WithMiddleware(
//	    middlewares.Language(dispatcher, middlewares.WithLanguagePersist(86400*365)),
//	)
//
// # Order
//
//	waypoint.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.Recover(),
//	    middlewares.Language(dispatcher),
//	)
package middlewares
