// Package internal provides the core types and implementation for the
// waypoint framework.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/waypoint" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: the HTTP front controller. Declared routes, static files and
//     health endpoints are served by chi; every other request is dispatched.
//   - Dispatcher: turns a request path into a module, controller, action and
//     arguments, then runs the action.
//   - URLs: builds localized URLs, the inverse of the dispatcher.
//   - Translator: maps routes between their canonical and localized forms.
//   - Policy: the routing configuration read from a config.Store.
//   - Controller, BaseController, Registry: the controller contract, an
//     action table to embed and the factory registry.
//   - Context: request/response access plus the routing result.
//
// # Request Flow
//
// For a request to "/es/usuarios/listar/2/sort:name" with language
// redirection in "param" mode:
//
//  1. BuildRoute parses the path, applies subdomain modules, aliases and the
//     start index, and takes "es" as the language.
//  2. The Translator maps "usuarios/listar/2" to "users/list/2".
//  3. The module tree is walked; "users" is not a module so it names the
//     Users controller of the root module.
//  4. "list" names the action; "2" is passed as an argument and "sort" is
//     available through Context.Named.
//
// A numeric segment after the controller is an argument of the default
// action. A missing controller runs ControllerError of the module's default
// controller; a missing action runs ActionError of the controller.
//
// # Events
//
// OnBeforeDispatch, OnModuleLoad, OnModuleLoaded, OnControllerLoad and
// OnAfterDispatch register listeners that run synchronously in that order.
// The first listener error aborts the dispatch.
//
// # Errors
//
// Dispatch failures, including recovered panics, are logged when
// logs.log_exceptions is set and returned to the App error handler when
// routes.throw_exceptions is set (the default).
package internal
