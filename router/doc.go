// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP routes to their handlers.

Routes use the Go 1.22+ ServeMux patterns with method prefixes and path
wildcards:

	mux.HandleFunc("POST /polls/vote/{id}", ...)

NewRouter builds the full mux from a poll manager and config. Every domain
route is wrapped in the logging middleware; the health and root endpoints
are not.
*/
package router
