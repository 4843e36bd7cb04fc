// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and request/response helpers.

# Logging

WithLogging wraps a handler and logs request start and completion with
method, path, and duration:

	mux.HandleFunc("POST /polls/create", middleware.WithLogging(handler.CreatePoll))

# JSON Helpers

JSONResponse and ErrorResponse write JSON bodies with the right headers;
ParseJSONBody decodes a request body into a struct:

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# CORS

CORS reflects the request origin and handles OPTIONS preflights so browser
frontends on other origins can call the API.

# Client IP

GetClientIP resolves the client address behind proxies: X-Forwarded-For
first, then X-Real-IP, then RemoteAddr with the port stripped. Handlers hash
this address before it is stored anywhere.
*/
package middleware
