// Package config provides an immutable key/value configuration store backed by YAML.
//
// Unlike a plain map[string]any decode, the store keeps the order in which mapping keys
// appear in the source document. Routing policy depends on that order: regex aliases are
// applied first-to-last, subdomain maps are scanned in declaration order and alias tables
// break similarity ties by registration order.
//
// # Lookup
//
// Keys are dotted paths. At every level the longest matching key wins, so both nested
// documents and flat dotted keys resolve the same way:
//
//	core:
//	  controllers.dir: ./controllers   # Get("core.controllers.dir")
//	routes:
//	  start_index: 1                   # Get("routes.start_index")
//
// # Usage
//
//	store, err := config.LoadFile("config/app.yaml",
//		config.WithEnvPrefix("WAYPOINT"),
//		config.WithDefaults(map[string]any{"routes.start_index": 0}),
//	)
//	if err != nil {
//		return err
//	}
//	dir := store.String("core.controllers.dir")
//
// Mappings are exposed as *OrderedMap, sequences as []any and scalars as the types
// produced by yaml.v3 (string, int, float64, bool, nil).
//
// # Environment Overrides
//
// With WithEnvPrefix("WAYPOINT") the key "routes.start_index" can be overridden by
// WAYPOINT_ROUTES_START_INDEX. Overrides apply to scalar lookups only.
package config
