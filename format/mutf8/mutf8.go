// Package mutf8 converts between Go strings and the modified UTF-8 text encoding used by Java's DataInput and
// DataOutput: the NUL character is written as the two-byte sequence C0 80, and code points outside the basic
// multilingual plane are written as a UTF-16 surrogate pair with each half encoded as a three-byte sequence.
package mutf8

import (
	"unicode/utf8"

	"github.com/eluv-io/errors-go"
)

// Decode converts modified UTF-8 data to a string. Well-formed UTF-8 input without 4-byte sequences is returned as is.
// Malformed data and unpaired surrogate halves are rejected with an error of kind Invalid.
func Decode(b []byte) (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}
	return decodeSlow(b)
}

func decodeSlow(b []byte) (string, error) {
	e := errors.Template("mutf8.Decode", errors.K.Invalid, "reason", "invalid MUTF-8 data")

	buf := make([]byte, 0, len(b))
	i := 0
	for i < len(b) {
		b1 := b[i]
		if b1 < 0x80 {
			buf = append(buf, b1)
			i++
			continue
		}

		if b1 == 0xC0 {
			if i+1 >= len(b) || b[i+1] != 0x80 {
				return "", e("offset", i)
			}
			buf = append(buf, 0)
			i += 2
			continue
		}

		switch width(b1) {
		case 2:
			if i+1 >= len(b) || !isCont(b[i+1]) {
				return "", e("offset", i)
			}
			buf = append(buf, b1, b[i+1])
			i += 2
		case 3:
			if i+2 >= len(b) {
				return "", e("offset", i)
			}
			b2, b3 := b[i+1], b[i+2]
			if b1 == 0xED && b2 >= 0xA0 && b2 <= 0xAF {
				// high surrogate, must be followed by a low surrogate
				if i+5 >= len(b) || !isCont(b3) ||
					b[i+3] != 0xED || b[i+4] < 0xB0 || b[i+4] > 0xBF || !isCont(b[i+5]) {
					return "", e("offset", i)
				}
				hi := surrogate(b2, b3)
				lo := surrogate(b[i+4], b[i+5])
				buf = utf8.AppendRune(buf, 0x10000+((hi-0xD800)<<10|(lo-0xDC00)))
				i += 6
				continue
			}
			if !validThree(b1, b2) || !isCont(b3) {
				return "", e("offset", i)
			}
			buf = append(buf, b1, b2, b3)
			i += 3
		default:
			return "", e("offset", i)
		}
	}
	return string(buf), nil
}

// Encode converts the given string to modified UTF-8.
func Encode(s string) []byte {
	return Append(make([]byte, 0, Len(s)), s)
}

// Append appends the modified UTF-8 encoding of s to dst and returns the extended slice. s must be valid UTF-8.
func Append(dst []byte, s string) []byte {
	if IsValid(s) {
		return append(dst, s...)
	}
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == 0:
			dst = append(dst, 0xC0, 0x80)
			i++
		case c >= 0xF0:
			r, size := utf8.DecodeRuneInString(s[i:])
			r -= 0x10000
			dst = appendSurrogate(dst, 0xD800|(r>>10))
			dst = appendSurrogate(dst, 0xDC00|(r&0x3FF))
			i += size
		default:
			dst = append(dst, c)
			i++
		}
	}
	return dst
}

// Len returns the exact length of the modified UTF-8 encoding of s.
func Len(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == 0:
			n += 2
		case c >= 0xF0:
			// 4-byte lead: the whole sequence becomes 6 bytes, the 3 continuation bytes count 0
			n += 6
			i += 3
		default:
			n++
		}
	}
	return n
}

// IsValid reports whether the UTF-8 string s is already valid modified UTF-8, i.e. it contains neither NUL nor any
// 4-byte sequence. Such strings are written without conversion.
func IsValid(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == 0 || c >= 0xF0 {
			return false
		}
	}
	return true
}

func appendSurrogate(dst []byte, s rune) []byte {
	return append(dst,
		byte(0xE0|(s>>12)),
		byte(0x80|((s>>6)&0x3F)),
		byte(0x80|(s&0x3F)))
}

func surrogate(b2, b3 byte) rune {
	return 0xD000 | rune(b2&0x3F)<<6 | rune(b3&0x3F)
}

func width(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b >= 0xC2 && b <= 0xDF:
		return 2
	case b >= 0xE0 && b <= 0xEF:
		return 3
	}
	return 0
}

func isCont(b byte) bool {
	return b&0xC0 == 0x80
}

func validThree(b1, b2 byte) bool {
	switch {
	case b1 == 0xE0:
		return b2 >= 0xA0 && b2 <= 0xBF
	case b1 >= 0xE1 && b1 <= 0xEC:
		return b2 >= 0x80 && b2 <= 0xBF
	case b1 == 0xED:
		return b2 >= 0x80 && b2 <= 0x9F
	case b1 >= 0xEE && b1 <= 0xEF:
		return b2 >= 0x80 && b2 <= 0xBF
	}
	return false
}
