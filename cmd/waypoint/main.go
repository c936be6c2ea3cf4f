// Command waypoint inspects routing configurations: it resolves request
// paths, builds URLs, lists modules and serves a dry-run dispatcher.
package main

import "github.com/dmitrymomot/waypoint/cmd/waypoint/commands"

func main() {
	commands.Execute()
}
