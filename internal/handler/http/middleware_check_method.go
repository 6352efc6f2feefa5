// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-mess-manager/internal/utils"
	"github.com/MKhiriev/go-mess-manager/models"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns an [http.HandlerFunc] intended to be registered as
// the router's MethodNotAllowed handler via [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 Method Not Allowed when a path matches a registered route
// but the method does not. This handler answers 404 instead, so callers
// probing with unsupported methods cannot learn which routes exist. If the
// method turns out to be registered after all, the request is forwarded to
// the router's normal pipeline.
//
// Only exact pattern matches are considered; parameterised segments are not
// expanded during the lookup.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		requestedURL := r.URL.Path
		requestedHTTPMethod := r.Method

		allRoutes := router.Routes()
		var foundRoute chi.Route
		for _, route := range allRoutes {
			if route.Pattern == requestedURL {
				foundRoute = route
				break
			}
		}

		if _, ok := foundRoute.Handlers[requestedHTTPMethod]; !ok {
			_, _ = utils.WriteAPIError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), models.CodeNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
