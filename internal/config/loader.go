package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CREAL_"

// configFileNames are searched for in the working directory when no
// explicit file is given.
var configFileNames = []string{"creal.yaml", "creal.yml"}

// flagKeys maps flag names to config keys. Flags not listed here are
// never read into the config.
var flagKeys = map[string]string{
	"digits":    "digits",
	"radix":     "radix",
	"timeout":   "timeout",
	"log-level": "log_level",
	"history":   "history.enabled",
	"db":        "history.path",
}

// DefaultHistoryPath returns the history database location used when
// none is configured.
func DefaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".creal_history.db"
	}
	return filepath.Join(dir, "creal", "history.db")
}

// Defaults returns the built-in settings as a koanf map.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"digits":          DefaultDigits,
		"radix":           DefaultRadix,
		"timeout":         DefaultTimeout.String(),
		"log_level":       DefaultLogLevel,
		"history.enabled": false,
		"history.path":    DefaultHistoryPath(),
	}
}

// findConfigFile returns explicit if set, otherwise the first default
// config file present in the working directory, otherwise "".
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// envKey turns CREAL_HISTORY_PATH into history.path and CREAL_LOG_LEVEL
// into log_level.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "history_"); ok {
		return "history." + rest
	}
	return key
}

// Load merges defaults, the config file, the environment and the
// explicitly set flags, then validates the result.
//
// cfgFile may be empty. An explicit cfgFile that does not exist is an
// error; a missing default file is not. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	fileHistoryPath := ""
	if used != "" {
		fk := koanf.New(".")
		if err := fk.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
		fileHistoryPath = fk.String("history.path")
		if err := k.Merge(fk); err != nil {
			return nil, fmt.Errorf("error merging config file %s: %w", used, err)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Relative history paths in a config file are relative to that file.
	if cfg.History.Path == fileHistoryPath && fileHistoryPath != "" && !filepath.IsAbs(fileHistoryPath) {
		cfg.History.Path = filepath.Join(filepath.Dir(used), fileHistoryPath)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
