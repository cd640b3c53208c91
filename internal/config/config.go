package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "./fileforge.yaml"

type Config struct {
	// TargetDir — каталог для новых файлов; пусто означает ~/Desktop.
	TargetDir      string `yaml:"target_dir" json:"target_dir"`
	SkipSpaceCheck bool   `yaml:"skip_space_check" json:"skip_space_check"`
	Progress       string `yaml:"progress" json:"progress"`
	LogLevel       string `yaml:"log_level" json:"log_level"`
}

// Default возвращает конфигурацию, с которой инструмент работает без файла.
func Default() *Config {
	return &Config{
		Progress: "lines",
		LogLevel: "warn",
	}
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
// Пустой path означает CONFIG_PATH или ./fileforge.yaml; отсутствие файла по умолчанию не ошибка.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = getenv("CONFIG_PATH", defaultConfigPath)
		explicit = os.Getenv("CONFIG_PATH") != ""
	}

	c := Default()
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, errors.Wrapf(err, "read config")
	}

	// ENV override
	if v := os.Getenv("FILEFORGE_DIR"); v != "" {
		c.TargetDir = v
	}
	if v := os.Getenv("FILEFORGE_PROGRESS"); v != "" {
		c.Progress = v
	}
	if v := os.Getenv("FILEFORGE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("FILEFORGE_SKIP_SPACE_CHECK"); v != "" {
		skip, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, errors.Wrapf(err, "FILEFORGE_SKIP_SPACE_CHECK")
		}
		c.SkipSpaceCheck = skip
	}

	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
