package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmitrymomot/waypoint"
	"github.com/dmitrymomot/waypoint/pkg/config"
)

// JSONResponse is the envelope of every --json output.
type JSONResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TargetOutput is a resolved route.
type TargetOutput struct {
	Route           string            `json:"route"`
	Language        string            `json:"language,omitempty"`
	Locale          string            `json:"locale,omitempty"`
	Requested       string            `json:"requested,omitempty"`
	Module          string            `json:"module"`
	Controller      string            `json:"controller"`
	Action          string            `json:"action"`
	Args            []string          `json:"args"`
	Named           map[string]string `json:"named,omitempty"`
	ControllerError bool              `json:"controller_error,omitempty"`
	ActionError     bool              `json:"action_error,omitempty"`
	Redirect        string            `json:"redirect,omitempty"`
}

// URLOutput is a built URL.
type URLOutput struct {
	URL string `json:"url"`
}

// ModuleOutput is one module of the controller tree.
type ModuleOutput struct {
	Module      string   `json:"module"`
	Default     string   `json:"default"`
	Controllers []string `json:"controllers"`
}

func newTargetOutput(t *waypoint.Target) TargetOutput {
	if t == nil {
		return TargetOutput{Args: []string{}}
	}
	out := TargetOutput{
		Route:           t.Route,
		Language:        t.Language,
		Locale:          t.Locale,
		Requested:       t.Requested,
		Module:          t.Module,
		Controller:      t.Controller,
		Action:          t.Action,
		Args:            append([]string{}, t.Args...),
		ControllerError: t.ControllerError,
		ActionError:     t.ActionError,
		Redirect:        t.Redirect,
	}
	if t.Named != nil && t.Named.Len() > 0 {
		out.Named = make(map[string]string, t.Named.Len())
		for k, v := range t.Named.All() {
			out.Named[k] = config.ToString(v)
		}
	}
	return out
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func printSuccess(w io.Writer, data any) error {
	return printJSON(w, JSONResponse{Success: true, Data: data})
}

// fail reports err in the JSON envelope when --json is set and returns it
// so the process exits non-zero.
func (o *options) fail(w io.Writer, err error) error {
	if o.jsonOutput {
		_ = printJSON(w, JSONResponse{Success: false, Error: err.Error()})
	}
	return err
}
