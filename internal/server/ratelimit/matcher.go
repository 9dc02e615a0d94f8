package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for endpoints that are never throttled
var unlimited = EndpointConfig{}

// MatchEndpoint finds the configuration for a request, or nil when the default applies.
// Exact paths win over prefix entries; GET /health is never limited.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == http.MethodGet {
		u := unlimited
		return &u
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
