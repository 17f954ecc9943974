package env

import (
	"strings"
	"time"
)

// Prefix scopes variable names to an application.
// For example, Prefix("CLOUD_").Val("LOG_FILE", "") reads CLOUD_LOG_FILE.
type Prefix string

// Key returns the full variable name for name.
func (p Prefix) Key(name string) string {
	return strings.ToUpper(string(p) + name)
}

func (p Prefix) Val(name string, defaultVal string) string {
	return Val(p.Key(name), defaultVal)
}

func (p Prefix) Bool(name string, defaultVal bool) bool {
	return Bool(p.Key(name), defaultVal)
}

func (p Prefix) Int(name string, defaultVal int64) int64 {
	return Int(p.Key(name), defaultVal)
}

func (p Prefix) Duration(name string, defaultVal time.Duration) time.Duration {
	return Duration(p.Key(name), defaultVal)
}

func (p Prefix) OneOf(name string, defaultVal string, choices ...string) string {
	return OneOf(p.Key(name), defaultVal, choices...)
}
