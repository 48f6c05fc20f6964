package ratelimit

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the rate limit rule for one endpoint
type EndpointConfig struct {
	Path   string        // Exact path; a trailing slash is ignored
	Method string        // HTTP method
	Limit  int           // Requests per window
	Window time.Duration // Refill window
	Burst  int           // Bucket capacity (Limit when 0)
}

// LoadConfig builds the limiter configuration. enabled comes from the service
// config; RATE_LIMIT_ENABLED=false also disables limiting. generationPaths
// are the expensive generation endpoints.
func LoadConfig(enabled bool, generationPaths []string) *Config {
	if !enabled || !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	generate := EndpointConfig{
		Method: http.MethodPost,
		Limit:  getEnvInt("RATE_LIMIT_GENERATE_LIMIT", 10),
		Window: getEnvDuration("RATE_LIMIT_GENERATE_WINDOW", time.Hour),
		Burst:  getEnvInt("RATE_LIMIT_GENERATE_BURST", 2),
	}
	upload := EndpointConfig{
		Path:   "/uploads",
		Method: http.MethodPost,
		Limit:  getEnvInt("RATE_LIMIT_UPLOAD_LIMIT", 100),
		Window: getEnvDuration("RATE_LIMIT_UPLOAD_WINDOW", time.Minute),
		Burst:  getEnvInt("RATE_LIMIT_UPLOAD_BURST", 10),
	}

	rules := make([]EndpointConfig, 0, len(generationPaths)+1)
	for _, p := range generationPaths {
		rule := generate
		rule.Path = p
		rules = append(rules, rule)
	}
	rules = append(rules, upload)

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: rules,
	}
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of client addresses into a set
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
