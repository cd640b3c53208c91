// Package bytesize переводит размеры, введённые человеком, в байты и обратно.
package bytesize

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/sir_venger/fileforge/internal/models"
)

// Двоичные множители (IEC): kb = 1024, mb = 1024², ...
const (
	B  int64 = 1
	KB       = 1024 * B
	MB       = 1024 * KB
	GB       = 1024 * MB
	TB       = 1024 * GB
)

var units = map[string]int64{
	"b":  B,
	"kb": KB,
	"mb": MB,
	"gb": GB,
	"tb": TB,
}

// Parse разбирает строку вида "10gb" или "1024" и возвращает число байт.
func Parse(raw string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, errors.Wrap(models.ErrInvalidFormat, "empty size")
	}
	if isDigits(s) {
		return magnitude(s)
	}

	var digits, unit strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case unicode.IsLetter(r):
			unit.WriteRune(r)
		case unicode.IsSpace(r), r == ',', r == '_':
			// разделители разрядов: "1,048,576", "1_024kb"
		default:
			return 0, errors.Wrapf(models.ErrInvalidFormat, "unexpected character %q in %q", r, raw)
		}
	}

	// цифры с пробелами внутри ("10 24") считаются байтами
	u := unit.String()
	if u == "" {
		u = "b"
	}
	mult, ok := units[u]
	if !ok {
		return 0, errors.Wrapf(models.ErrInvalidUnit, "%q is not a valid size modifier (b, kb, mb, gb or tb)", u)
	}
	if digits.Len() == 0 {
		return 0, errors.Wrapf(models.ErrInvalidFormat, "no number in %q", raw)
	}

	n, err := magnitude(digits.String())
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt64/mult {
		return 0, errors.Wrapf(models.ErrInvalidFormat, "size %q is too large", raw)
	}

	return n * mult, nil
}

// Format печатает число байт с разделителями разрядов: 1048576 -> "1,048,576".
func Format(n int64) string {
	return humanize.Comma(n)
}

// Human печатает размер в двоичных единицах: 1048576 -> "1.0 MiB".
func Human(n int64) string {
	if n < 0 {
		return strconv.FormatInt(n, 10) + " B"
	}
	return humanize.IBytes(uint64(n))
}

func magnitude(digits string) (int64, error) {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(models.ErrInvalidFormat, "size %q is out of range", digits)
	}
	return n, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
