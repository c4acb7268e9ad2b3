// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/MKhiriev/dashboard-api/internal/logger"
)

// withThrottle limits requests per client IP. chi's RealIP middleware must
// run first so proxied clients are told apart.
func (h *Handler) withThrottle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)

		allowed, wait := h.throttle.Allow(key)
		if allowed {
			next.ServeHTTP(w, r)
			return
		}

		seconds := max(int64(math.Ceil(wait.Seconds())), 1)
		logger.FromRequest(r).Warn().
			Str("client_ip", key).
			Int64("retry_after", seconds).
			Msg("request throttled")
		h.metrics.AuthFailure("throttled")

		response := responseFromError(errThrottled)
		response.detail = fmt.Sprintf("Request was throttled. Expected available in %d seconds.", seconds)

		w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
		writeErrorResponse(w, response)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
