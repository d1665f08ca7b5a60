package config

import (
	"fmt"
	"sort"
	"strings"
)

// KeyInfo describes one configuration key.
type KeyInfo struct {
	Key         string
	Env         string
	Default     string
	Description string
}

var keyDescriptions = map[string]string{
	"verbose":                "Enable debug logging",
	"log_level":              "Log level (debug, info, warn, error)",
	"output":                 "Output format (auto, text, json)",
	"repl.prompt":            "Prompt shown before each interactive line",
	"repl.echo":              "Print interactive results as command = value",
	"repl.history_file":      "File that keeps interactive line history (empty disables)",
	"batch.echo":             "Print batch results as command = value",
	"batch.share_last_value": "Let STORE in one argument see the previous argument's value",
	"batch.fail_fast":        "Stop a batch at the first failing command",
}

// Keys returns every configuration key with its environment variable and
// default, sorted by key.
func Keys() []KeyInfo {
	defaults := defaultsMap()
	keys := make([]KeyInfo, 0, len(defaults))
	for key, def := range defaults {
		keys = append(keys, KeyInfo{
			Key:         key,
			Env:         EnvVar(key),
			Default:     fmt.Sprint(def),
			Description: keyDescriptions[key],
		})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Key < keys[j].Key })
	return keys
}

// EnvVar returns the environment variable that sets key. It is the inverse
// of the mapping LoadConfig applies to BFCALC_* variables.
func EnvVar(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "__"))
}
