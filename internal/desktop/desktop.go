// Package desktop определяет каталог, в котором создаётся файл.
package desktop

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/sir_venger/fileforge/internal/models"
)

// Resolve возвращает override, если он задан, иначе ~/Desktop.
// Каталог обязан существовать.
func Resolve(override string) (string, error) {
	dir := strings.TrimSpace(override)
	if dir == "" || dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrapf(models.ErrNoTargetDir, "home directory: %v", err)
		}
		switch {
		case dir == "":
			dir = filepath.Join(home, "Desktop")
		case dir == "~":
			dir = home
		default:
			dir = filepath.Join(home, dir[2:])
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", errors.Wrapf(models.ErrNoTargetDir, "%s: %v", dir, err)
	}
	if !info.IsDir() {
		return "", errors.Wrapf(models.ErrNoTargetDir, "%s is not a directory", dir)
	}

	return filepath.Clean(dir), nil
}
