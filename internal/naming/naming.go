// Package naming проверяет имена создаваемых файлов.
package naming

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/sir_venger/fileforge/internal/models"
)

// MaxLength — предельная длина имени в символах.
const MaxLength = 260

var forbidden = regexp.MustCompile(`[\\/:*?"<>|]`)

// Validate отклоняет пустые имена, имена с запрещёнными символами \ / : * ? " < > |
// и имена длиннее MaxLength.
func Validate(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrap(models.ErrInvalidName, "name is empty")
	}
	if c := forbidden.FindString(name); c != "" {
		return errors.Wrapf(models.ErrInvalidName, "name contains %q", c)
	}
	if n := utf8.RuneCountInString(name); n > MaxLength {
		return errors.Wrapf(models.ErrInvalidName, "name is %d characters long, limit is %d", n, MaxLength)
	}
	return nil
}
