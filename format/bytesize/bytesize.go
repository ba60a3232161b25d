// Package bytesize parses and formats byte counts such as output limits, using units that are a multiple of 1024,
// e.g. 1MB = 1024 * 1024 bytes.
package bytesize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eluv-io/errors-go"
)

// Size is a number of bytes.
type Size int64

const (
	B  Size = 1
	KB      = B << 10
	MB      = KB << 10
	GB      = MB << 10
	TB      = GB << 10

	maxSize = 1<<63 - 1
)

var units = []struct {
	size  Size
	names []string
}{
	{TB, []string{"t", "tb", "tib"}},
	{GB, []string{"g", "gb", "gib"}},
	{MB, []string{"m", "mb", "mib"}},
	{KB, []string{"k", "kb", "kib"}},
	{B, []string{"", "b"}},
}

// Parse parses a size like "512", "64KB", "1.5 MiB" or "2g". Unit names are case insensitive, except that a capital
// prefix followed by a lower-case b denotes bits and is rejected.
func Parse(s string) (Size, error) {
	e := errors.Template("bytesize.Parse", errors.K.Invalid, "size", s)

	t := strings.TrimSpace(s)
	i := strings.IndexFunc(t, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if i < 0 {
		i = len(t)
	}
	num, unit := t[:i], strings.TrimSpace(t[i:])
	if num == "" {
		return 0, e("reason", "missing number")
	}
	if len(unit) == 2 && unit[1] == 'b' && unit[0] >= 'A' && unit[0] <= 'Z' {
		return 0, e("reason", "unit denotes bits, not bytes")
	}

	mul, ok := unitSize(strings.ToLower(unit))
	if !ok {
		return 0, e("reason", "unknown unit", "unit", unit)
	}
	if !strings.Contains(num, ".") {
		n, err := strconv.ParseInt(num, 10, 64)
		if err != nil {
			return 0, e(err)
		}
		if n > maxSize/int64(mul) {
			return 0, e("reason", "out of range")
		}
		return Size(n) * mul, nil
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, e(err)
	}
	if f*float64(mul) >= maxSize {
		return 0, e("reason", "out of range")
	}
	return Size(f * float64(mul)), nil
}

func unitSize(unit string) (Size, bool) {
	for _, u := range units {
		for _, name := range u.names {
			if unit == name {
				return u.size, true
			}
		}
	}
	return 0, false
}

// MustParse is like Parse but panics on errors.
func MustParse(s string) Size {
	size, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return size
}

// String returns the size in the largest unit that divides it exactly: "2GB", "1025B".
func (s Size) String() string {
	if s == 0 {
		return "0B"
	}
	for _, u := range units {
		if s%u.size == 0 {
			return strconv.FormatInt(int64(s/u.size), 10) + strings.ToUpper(u.names[1])
		}
	}
	return strconv.FormatInt(int64(s), 10) + "B"
}

// HR returns a rounded human readable form followed by the exact size: "1.5MB (1536KB)".
func (s Size) HR() string {
	for _, u := range units[:len(units)-1] {
		if s > u.size {
			return fmt.Sprintf("%.1f%s (%s)", float64(s)/float64(u.size), strings.ToUpper(u.names[1]), s)
		}
	}
	return s.String()
}

// Set implements pflag.Value.
func (s *Size) Set(val string) error {
	size, err := Parse(val)
	if err != nil {
		return err
	}
	*s = size
	return nil
}

// Type implements pflag.Value.
func (s *Size) Type() string {
	return "size"
}

func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Size) UnmarshalText(t []byte) error {
	return s.Set(string(t))
}
