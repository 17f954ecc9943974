// Package env reads configuration from environment variables, falling back to defaults when a variable is unset,
// empty, or malformed.
package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// lookup prefers an exact match, and falls back to a case-insensitive scan of the environment.
func lookup(key string) (string, bool) {
	if val, ok := os.LookupEnv(key); ok {
		return val, true
	}
	for _, entry := range os.Environ() {
		name, val, found := strings.Cut(entry, "=")
		if found && strings.EqualFold(name, key) {
			return val, true
		}
	}
	return "", false
}

// Val will attempt to get an environment variable value using the given key.
// If the variable isn't set, or is blank, then the defaultVal will be returned.
// Note that keys are compared case-insensitive.
func Val(key string, defaultVal string) string {
	val, ok := lookup(key)
	if !ok {
		return defaultVal
	}
	trimmed := strings.TrimSpace(val)
	if len(trimmed) == 0 {
		return defaultVal
	}
	return trimmed
}

// BoolIf allows translating an environment variable string value to a boolean using the given translation map.
// It's expected for the user to populate translation with a set of strings that relate to the map key.
// These values will be compared in a case-insensitive way.
//
// The defaultVal will be returned if the variable isn't set, is empty, or can't be a boolean value.
func BoolIf(key string, defaultVal bool, translation map[bool][]string) bool {
	sval := Val(key, "")
	if len(sval) == 0 || translation == nil {
		return defaultVal
	}
	for _, result := range []bool{true, false} {
		for _, candidate := range translation[result] {
			if strings.EqualFold(sval, candidate) {
				return result
			}
		}
	}
	return defaultVal
}

var (
	DefaultTrue  = []string{"1", "yes", "true", "on"}  // DefaultTrue are the values considered "true" when using [Bool], and can be changed.
	DefaultFalse = []string{"0", "no", "false", "off"} // DefaultFalse are the values considered "false" when using [Bool], and can be changed.
)

// Bool interprets an environment variable as a boolean, using [DefaultTrue] and [DefaultFalse].
// The defaultVal will be returned if the variable isn't set, is empty, or can't be a boolean value.
func Bool(key string, defaultVal bool) bool {
	return BoolIf(key, defaultVal, map[bool][]string{
		true:  DefaultTrue,
		false: DefaultFalse,
	})
}

// Int will attempt to interpret an environment variable as an integer, returning the defaultVal if the environment variable isn't found or can't be a valid integer.
func Int(key string, defaultVal int64) int64 {
	sval := Val(key, "")
	if len(sval) == 0 {
		return defaultVal
	}
	ival, err := strconv.ParseInt(sval, 10, 64)
	if err != nil {
		return defaultVal
	}
	return ival
}

// Duration will attempt to interpret an environment variable as a [time.Duration], returning the defaultVal if the environment variable isn't found or can't be a valid [time.Duration].
func Duration(key string, defaultVal time.Duration) time.Duration {
	sval := Val(key, "")
	if len(sval) == 0 {
		return defaultVal
	}
	dval, err := time.ParseDuration(sval)
	if err != nil {
		return defaultVal
	}
	return dval
}

// OneOf returns the choice matching an environment variable, compared case-insensitive.
// The defaultVal is returned if the variable doesn't match any choice.
func OneOf(key string, defaultVal string, choices ...string) string {
	sval := Val(key, "")
	for _, choice := range choices {
		if strings.EqualFold(sval, choice) {
			return choice
		}
	}
	return defaultVal
}
