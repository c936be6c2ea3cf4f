// Package waypoint is a convention based web framework: a request path names
// a module, a controller, an action and its arguments, and URLs are built back
// from the same names. Routes can be localized per language and the language
// can live in the first path segment or in a subdomain.
//
// # Quick Start
//
// Load the routing configuration, register controllers and run the app:
//
//	store, err := config.LoadFile("config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	registry := waypoint.NewRegistry().
//	    Register("Index", controllers.NewIndex).
//	    Register("Users", controllers.NewUsers(repo)).
//	    Register("admin/Dashboard", admin.NewDashboard)
//
//	dispatcher, err := waypoint.NewDispatcher(store, waypoint.WithRegistry(registry))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	app := waypoint.New(
//	    waypoint.WithLogger("web", waypoint.RouteExtractor()),
//	    waypoint.WithDispatcher(dispatcher),
//	)
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Controllers
//
// Controllers embed [BaseController] and register their actions:
//
//	type Users struct {
//	    waypoint.BaseController
//	    repo *Repo
//	}
//
//	func NewUsers(repo *Repo) waypoint.ControllerFactory {
//	    return func() waypoint.Controller {
//	        u := &Users{repo: repo}
//	        u.Handle("index", u.list)
//	        u.Handle("show", u.show)
//	        return u
//	    }
//	}
//
//	func (u *Users) show(c waypoint.Context, args ...string) error {
//	    user, err := u.repo.Get(c, waypoint.Arg[int64](c, 0))
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, user)
//	}
//
// "/users/show/5" runs show with args ["5"]; "/users/5" runs the default
// action with the same argument.
//
// # Configuration
//
//	core:
//	  domain: example.com
//	  controllers:
//	    default: Index
//	app:
//	  language: en
//	routes:
//	  language_redirect: param
//	  route_map:
//	    es:
//	      users: usuarios
//	      users/show: usuarios/ver
//	i18n:
//	  language_map:
//	    es: [ES, MX, AR]
//	    en: []
//
// # Building URLs
//
//	c.URL(waypoint.BuildInput{Controller: "users", Action: "show",
//	    Params: config.OrderedMapOf("0", 5)})
//	// http://example.com/es/usuarios/ver/5 for a Spanish request
//
// # Declared Routes
//
// Handlers registered with WithHandlers are served by chi and take precedence
// over dispatching; see [Handler].
package waypoint
