package settings

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// itemPrefix prefixes sequence element names: i_0, i_1, ...
const itemPrefix = "i_"

// emptyName is the element name used for the empty string.
const emptyName = "_x_"

// EncodeName maps an arbitrary field or key name onto a valid XML local name.
//
// Runes that may not appear at their position are written as _xHHHH_
// (or _xHHHHHHHH_ above the BMP). An underscore followed by 'x' is escaped
// itself, so "_x" in an encoded name always opens an escape. DecodeName
// reverses the mapping exactly.
func EncodeName(name string) string {
	if name == "" {
		return emptyName
	}

	var b strings.Builder
	b.Grow(len(name))

	for i, r := range name {
		switch {
		case r == '_' && strings.HasPrefix(name[i+1:], "x"):
			writeEscape(&b, r)
		case i == 0 && isNameStart(r):
			b.WriteRune(r)
		case i > 0 && isNameChar(r):
			b.WriteRune(r)
		default:
			writeEscape(&b, r)
		}
	}

	return b.String()
}

// DecodeName reverses EncodeName.
func DecodeName(elem string) (string, error) {
	if elem == emptyName {
		return "", nil
	}
	if elem == "" {
		return "", fmt.Errorf("%w: empty", ErrMalformedName)
	}

	var b strings.Builder
	b.Grow(len(elem))

	for i := 0; i < len(elem); {
		if strings.HasPrefix(elem[i:], "_x") {
			if !looksEscaped(elem[i:]) {
				return "", fmt.Errorf("%w: %q: bad escape at offset %d", ErrMalformedName, elem, i)
			}
			end := strings.IndexByte(elem[i+2:], '_')
			r, err := parseEscape(elem[i+2 : i+2+end])
			if err != nil {
				return "", fmt.Errorf("%w: %q: %v", ErrMalformedName, elem, err)
			}
			b.WriteRune(r)
			i += 2 + end + 1
			continue
		}

		r, size := utf8.DecodeRuneInString(elem[i:])
		if r == utf8.RuneError && size <= 1 {
			return "", fmt.Errorf("%w: %q: invalid utf-8", ErrMalformedName, elem)
		}
		if (i == 0 && !isNameStart(r)) || (i > 0 && !isNameChar(r)) {
			return "", fmt.Errorf("%w: %q: illegal rune %q", ErrMalformedName, elem, r)
		}
		b.WriteRune(r)
		i += size
	}

	return b.String(), nil
}

// ItemName returns the element name of sequence position i.
func ItemName(i int) string {
	return itemPrefix + strconv.Itoa(i)
}

// ParseItemName returns the position encoded in a sequence element name.
// It reports false for anything but i_<non-negative decimal>.
func ParseItemName(name string) (int, bool) {
	digits, ok := strings.CutPrefix(name, itemPrefix)
	if !ok || digits == "" {
		return 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return i, true
}

// looksEscaped reports whether s starts with _x, hex digits and a closing _.
func looksEscaped(s string) bool {
	if len(s) < 4 || s[0] != '_' || s[1] != 'x' {
		return false
	}
	for j := 2; j < len(s); j++ {
		c := s[j]
		if c == '_' {
			n := j - 2
			return n == 4 || n == 8
		}
		if !isHex(c) {
			return false
		}
	}
	return false
}

func writeEscape(b *strings.Builder, r rune) {
	if r > 0xFFFF {
		fmt.Fprintf(b, "_x%08X_", r)
		return
	}
	fmt.Fprintf(b, "_x%04X_", r)
}

func parseEscape(hex string) (rune, error) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, err
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, fmt.Errorf("invalid rune %#x", v)
	}
	return r, nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	switch {
	case isNameStart(r), unicode.IsDigit(r):
		return true
	case r == '-', r == '.':
		return true
	case unicode.In(r, unicode.Mn, unicode.Mc):
		return true
	}
	return false
}
