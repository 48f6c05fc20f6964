package ratelimit

import (
	"net/http"
	"strings"
)

// normalizePath drops a trailing slash so "/x" and "/x/" share a rule and a bucket
func normalizePath(path string) string {
	if len(path) > 1 {
		return strings.TrimRight(path, "/")
	}
	return path
}

// MatchEndpoint returns the rule for path and method, or nil when the default applies.
// The health check is always unlimited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	path = normalizePath(path)
	if path == "/health" && method == http.MethodGet {
		return &EndpointConfig{Path: path}
	}

	for i := range configs {
		rule := &configs[i]
		if rule.Method == method && normalizePath(rule.Path) == path {
			return rule
		}
	}
	return nil
}
