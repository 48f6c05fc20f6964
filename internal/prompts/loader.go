// Package prompts holds the analysis prompt fragments.
// Fragments are stored in analysis.json and embedded at compile time.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

//go:embed analysis.json
var analysisJSON []byte

// Key names one prompt fragment
type Key string

// Fragment keys, in the order they appear in a prompt
const (
	ProfileSummary = Key("profile-summary")
	Certificates   = Key("certificates")
	JobRole        = Key("job-role")
	JobDescription = Key("job-description")
	OutputFormat   = Key("output-format")
	SchemaATS      = Key("schema-ats")
	SchemaStandard = Key("schema-standard")
)

// Keys lists every fragment the analysis prompt is assembled from
var Keys = []Key{ProfileSummary, Certificates, JobRole, JobDescription, OutputFormat, SchemaATS, SchemaStandard}

// Set is a parsed fragment file
type Set map[Key]string

// Parse decodes a fragment file and checks that every key in Keys is present
func Parse(data []byte) (Set, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse prompt fragments: %w", err)
	}

	set := make(Set, len(raw))
	for k, v := range raw {
		set[Key(k)] = v
	}

	var missing []string
	for _, k := range Keys {
		if _, ok := set[k]; !ok {
			missing = append(missing, string(k))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("prompt fragments missing: %s", strings.Join(missing, ", "))
	}
	return set, nil
}

var loadEmbedded = sync.OnceValues(func() (Set, error) {
	return Parse(analysisJSON)
})

// Load returns the embedded fragment set, parsed once
func Load() (Set, error) {
	return loadEmbedded()
}

// Get returns one embedded fragment.
func Get(key Key) (string, error) {
	set, err := Load()
	if err != nil {
		return "", err
	}
	fragment, ok := set[key]
	if !ok {
		return "", fmt.Errorf("prompt fragment %q not found", key)
	}
	return fragment, nil
}

// MustGet is Get for fragments that are compiled in; it panics on a missing key.
func MustGet(key Key) string {
	fragment, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return fragment
}

var placeholderPattern = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

// Format replaces {{.Key}} placeholders with values from data.
// Substitution is single-pass: placeholders inside substituted values are left as-is.
// Placeholders without a value are kept verbatim.
func Format(template string, data map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := data[name]; ok {
			return value
		}
		return match
	})
}
