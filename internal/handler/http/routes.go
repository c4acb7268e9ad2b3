// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Guard names the access checks that run before a route handler.
type Guard string

const (
	GuardNone      Guard = "none"
	GuardThrottle  Guard = "throttle"
	GuardAuth      Guard = "auth"
	GuardStaff     Guard = "auth+staff"
	GuardSuperuser Guard = "auth+superuser"
)

// Route is one entry of the route table. Names follow the Django
// "namespace:name" convention so they can be reversed into paths.
type Route struct {
	Name    string
	Method  string
	Pattern string
	Guard   Guard

	handler http.HandlerFunc
}

func (h *Handler) routeTable() []Route {
	return []Route{
		{Name: "home", Method: http.MethodGet, Pattern: "/", Guard: GuardNone, handler: h.home},
		{Name: "token_obtain_pair", Method: http.MethodPost, Pattern: "/api/token/", Guard: GuardThrottle, handler: h.obtainTokenPair},
		{Name: "token_refresh", Method: http.MethodPost, Pattern: "/api/token/refresh/", Guard: GuardThrottle, handler: h.refreshToken},
		{Name: "user_info", Method: http.MethodGet, Pattern: "/api/user/info/", Guard: GuardAuth, handler: h.userInfo},
		{Name: "version", Method: http.MethodGet, Pattern: "/api/version/", Guard: GuardNone, handler: h.getServerVersion},
		{Name: "metrics", Method: http.MethodGet, Pattern: "/metrics", Guard: GuardNone, handler: h.serveMetrics},

		{Name: "admin:index", Method: http.MethodGet, Pattern: "/admin/", Guard: GuardStaff, handler: h.adminIndex},
		{Name: "admin:users_list", Method: http.MethodGet, Pattern: "/admin/users/", Guard: GuardStaff, handler: h.listUsers},
		{Name: "admin:users_add", Method: http.MethodPost, Pattern: "/admin/users/", Guard: GuardSuperuser, handler: h.createUser},
		{Name: "admin:users_detail", Method: http.MethodGet, Pattern: "/admin/users/{userID}/", Guard: GuardStaff, handler: h.getUser},
		{Name: "admin:users_change", Method: http.MethodPatch, Pattern: "/admin/users/{userID}/", Guard: GuardSuperuser, handler: h.updateUser},
		{Name: "admin:users_delete", Method: http.MethodDelete, Pattern: "/admin/users/{userID}/", Guard: GuardSuperuser, handler: h.deleteUser},
	}
}

// Init builds the router. It fails when the route table repeats a
// (method, pattern) pair or a route name.
func (h *Handler) Init() (*chi.Mux, error) {
	return h.buildRouter(h.routes)
}

// Routes returns a copy of the route table.
func (h *Handler) Routes() []Route {
	return slices.Clone(h.routes)
}

// Reverse returns the path of the named route with its {placeholders}
// filled from params in order.
func (h *Handler) Reverse(name string, params ...string) (string, error) {
	idx := slices.IndexFunc(h.routes, func(route Route) bool { return route.Name == name })
	if idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownRouteName, name)
	}

	segments := strings.Split(h.routes[idx].Pattern, "/")
	used := 0
	for i, segment := range segments {
		if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
			continue
		}
		if used == len(params) {
			return "", fmt.Errorf("%w: %q needs more than %d", ErrReverseParams, name, len(params))
		}
		segments[i] = params[used]
		used++
	}
	if used != len(params) {
		return "", fmt.Errorf("%w: %q takes %d, got %d", ErrReverseParams, name, used, len(params))
	}

	return strings.Join(segments, "/"), nil
}

func (h *Handler) buildRouter(routes []Route) (*chi.Mux, error) {
	if err := checkRoutes(routes); err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// HEAD is answered by the GET handler of the same path
	router.Use(middleware.GetHead)
	router.Use(middleware.Compress(5))
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	for _, route := range routes {
		router.With(h.guard(route.Guard)...).Method(route.Method, route.Pattern, route.handler)
	}

	// a known path with an unsupported method is reported as missing too
	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.notFound)

	return router, nil
}

func (h *Handler) guard(g Guard) []func(http.Handler) http.Handler {
	switch g {
	case GuardThrottle:
		if h.throttle == nil {
			return nil
		}
		return []func(http.Handler) http.Handler{h.withThrottle}
	case GuardAuth:
		return []func(http.Handler) http.Handler{h.auth}
	case GuardStaff:
		return []func(http.Handler) http.Handler{h.auth, h.requireStaff}
	case GuardSuperuser:
		return []func(http.Handler) http.Handler{h.auth, h.requireSuperuser}
	default:
		return nil
	}
}

func checkRoutes(routes []Route) error {
	patterns := make(map[string]string, len(routes))
	names := make(map[string]struct{}, len(routes))

	for _, route := range routes {
		if route.Name == "" {
			return fmt.Errorf("%w: %s %s", ErrEmptyRouteName, route.Method, route.Pattern)
		}
		if _, exists := names[route.Name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateRouteName, route.Name)
		}
		names[route.Name] = struct{}{}

		key := route.Method + " " + route.Pattern
		if other, exists := patterns[key]; exists {
			return fmt.Errorf("%w: %s is used by %q and %q", ErrDuplicateRoute, key, other, route.Name)
		}
		patterns[key] = route.Name
	}

	return nil
}
