package argument

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
)

var _ Argument = (*Int)(nil)

// Int is an option holding an integer.
// Values with a fractional part of zero, like "5.0", are accepted.
type Int struct {
	base
}

func NewInt(help string, spellings ...string) *Int {
	return &Int{base: newBase(AritySingle, help, spellings)}
}

func (i *Int) WithDefault(def int) *Int {
	i.def = def
	return i
}

func (i *Int) Set(raw []string) error {
	val, err := lastValue(raw)
	if err != nil {
		return err
	}
	parsed, err := parseInt(val)
	if err != nil {
		return err
	}
	i.store(parsed)
	return nil
}

// Int returns the current value, and false if there is none.
func (i *Int) Int() (int, bool) {
	val, ok := i.Value().(int)
	return val, ok
}

func parseInt(val string) (int, error) {
	trimmed := strings.TrimSpace(val)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	// -math.MinInt is exactly representable as a float, unlike math.MaxInt.
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) ||
		f >= -math.MinInt || f < math.MinInt {
		return 0, Syntax([]string{"Value must be an integer, like 5"}, "invalid integer value %q", val)
	}
	return int(f), nil
}

var sizeUnits = []string{"B", "KiB", "KB", "MiB", "MB", "GiB", "GB", "TiB", "TB"}

var _ Argument = (*DataSize)(nil)

// DataSize is an option holding a number of bytes.
// The value may be a plain integer, or a number followed by one of B, KiB, KB, MiB, MB, GiB, GB, TiB, or TB.
// Binary units are multiples of 1024, and decimal units are multiples of 1000.
type DataSize struct {
	base
}

func NewDataSize(help string, spellings ...string) *DataSize {
	return &DataSize{base: newBase(AritySingle, help, spellings)}
}

func (d *DataSize) WithDefault(bytes int64) *DataSize {
	d.def = bytes
	return d
}

func (d *DataSize) Set(raw []string) error {
	val, err := lastValue(raw)
	if err != nil {
		return err
	}
	bytes, err := parseDataSize(val)
	if err != nil {
		return err
	}
	d.store(bytes)
	return nil
}

// Bytes returns the current value, and false if there is none.
func (d *DataSize) Bytes() (int64, bool) {
	val, ok := d.Value().(int64)
	return val, ok
}

// Format renders the current value with the largest fitting unit.
// Binary units are used if binary is true.
func (d *DataSize) Format(binary bool) string {
	bytes, ok := d.Bytes()
	if !ok {
		return ""
	}
	return FormatDataSize(bytes, binary)
}

// FormatDataSize renders a byte count with the largest fitting decimal or binary unit.
func FormatDataSize(bytes int64, binary bool) string {
	if bytes < 0 {
		return strconv.FormatInt(bytes, 10)
	}
	if binary {
		return humanize.IBytes(uint64(bytes))
	}
	return humanize.Bytes(uint64(bytes))
}

func sizeError(val string) error {
	return Syntax([]string{
		"Size must be an integer number of bytes, or a number followed by a unit",
		"Valid units: " + strings.Join(sizeUnits, ", "),
		"For example: 1024, 2.5GiB, 100MB",
	}, "invalid data size %q", val)
}

func parseDataSize(val string) (int64, error) {
	trimmed := strings.TrimSpace(val)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		if n < 0 {
			return 0, sizeError(val)
		}
		return n, nil
	}
	split := strings.IndexFunc(trimmed, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	if split <= 0 {
		return 0, sizeError(val)
	}
	number, unit := trimmed[:split], strings.TrimSpace(trimmed[split:])
	if !slices.Contains(sizeUnits, unit) {
		return 0, sizeError(val)
	}
	if _, err := strconv.ParseFloat(number, 64); err != nil {
		return 0, sizeError(val)
	}
	bytes, err := humanize.ParseBytes(number + unit)
	if err != nil || bytes > math.MaxInt64 {
		return 0, sizeError(val)
	}
	return int64(bytes), nil
}
