package env

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type envCase[T any] struct {
	unset    bool
	value    string
	expected T
}

func runEnvCases[T any](t *testing.T, key string, tests map[string]envCase[T], get func() T) {
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if tc.unset {
				t.Setenv(key, "")
				assert.NoError(t, os.Unsetenv(key))
			} else {
				t.Setenv(key, tc.value)
			}
			assert.Equal(t, tc.expected, get())
		})
	}
}

func TestVal(t *testing.T) {
	const key = "TEST_VAL"
	runEnvCases(t, key, map[string]envCase[string]{
		"Unset":   {unset: true, expected: "default"},
		"Empty":   {value: "", expected: "default"},
		"Trimmed": {value: "\n\t abc \t\n", expected: "abc"},
	}, func() string {
		return Val(key, "default")
	})

	t.Setenv(key, "lower")
	assert.Equal(t, "lower", Val(strings.ToLower(key), ""), "Keys should be compared case-insensitive")
}

func TestBoolIf_EmptyTranslation(t *testing.T) {
	const key = "TEST_BOOLIF_EMPTY"
	t.Setenv(key, "true")
	assert.NotPanics(t, func() {
		assert.True(t, BoolIf(key, true, nil))
	})
}

func TestBool(t *testing.T) {
	const key = "TEST_BOOL"
	runEnvCases(t, key, map[string]envCase[bool]{
		"Unset":           {unset: true, expected: false},
		"Empty":           {value: "", expected: false},
		"Not a bool":      {value: "blah", expected: false},
		"Truthy":          {value: DefaultTrue[0], expected: true},
		"Truthy Upper":    {value: strings.ToUpper(DefaultTrue[2]), expected: true},
		"Falsy":           {value: DefaultFalse[0], expected: false},
		"Falsy Uppercase": {value: strings.ToUpper(DefaultFalse[2]), expected: false},
	}, func() bool {
		return Bool(key, false)
	})
}

func TestInt(t *testing.T) {
	const (
		key              = "TEST_INT"
		defaultVal int64 = -17
	)
	runEnvCases(t, key, map[string]envCase[int64]{
		"Unset":      {unset: true, expected: defaultVal},
		"Empty":      {value: "", expected: defaultVal},
		"Not an int": {value: "blah", expected: defaultVal},
		"Positive":   {value: "100", expected: 100},
		"Negative":   {value: "-100", expected: -100},
		"Zero":       {value: "0", expected: 0},
	}, func() int64 {
		return Int(key, defaultVal)
	})
}

func TestDuration(t *testing.T) {
	const (
		key                      = "TEST_DUR"
		defaultVal time.Duration = -5 * time.Minute
	)
	runEnvCases(t, key, map[string]envCase[time.Duration]{
		"Unset":          {unset: true, expected: defaultVal},
		"Empty":          {value: "", expected: defaultVal},
		"Not a duration": {value: "blah", expected: defaultVal},
		"Positive":       {value: "10m", expected: 10 * time.Minute},
		"Negative":       {value: "-10m", expected: -10 * time.Minute},
		"Zero":           {value: "0h", expected: 0},
	}, func() time.Duration {
		return Duration(key, defaultVal)
	})
}

func TestOneOf(t *testing.T) {
	const key = "TEST_ONE_OF"
	runEnvCases(t, key, map[string]envCase[string]{
		"Unset":      {unset: true, expected: "auto"},
		"Match":      {value: "never", expected: "never"},
		"Upper case": {value: "ALWAYS", expected: "always"},
		"No match":   {value: "sometimes", expected: "auto"},
	}, func() string {
		return OneOf(key, "auto", "auto", "always", "never")
	})
}

func TestPrefix(t *testing.T) {
	p := Prefix("cloud_")
	assert.Equal(t, "CLOUD_LOG_FILE", p.Key("log_file"))

	t.Setenv("CLOUD_LOG_FILE", "/tmp/cloud.log")
	t.Setenv("CLOUD_HELP_WIDTH", "100")
	t.Setenv("CLOUD_TIMEOUT", "30s")
	t.Setenv("CLOUD_COLOR", "off")
	t.Setenv("CLOUD_PROMPT", "Never")
	assert.Equal(t, "/tmp/cloud.log", p.Val("LOG_FILE", ""))
	assert.Equal(t, int64(100), p.Int("HELP_WIDTH", 80))
	assert.Equal(t, 30*time.Second, p.Duration("TIMEOUT", 0))
	assert.False(t, p.Bool("COLOR", true))
	assert.Equal(t, "never", p.OneOf("PROMPT", "auto", "auto", "always", "never"))
	assert.Equal(t, "fallback", p.Val("UNSET_FOR_TEST", "fallback"))
}
