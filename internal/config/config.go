package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/chibuka/atc-cli/internal/runner"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ConfigPath is where the config lives unless overridden.
const ConfigPath = "~/.config/atcoder-tool.toml"

// EnvPrefix prefixes environment overrides, e.g. ATC_LANGUAGE_EXE_CMD.
const EnvPrefix = "ATC"

type Config struct {
	Language LanguageConfig `mapstructure:"language"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
}

type LanguageConfig struct {
	Lang         string        `mapstructure:"lang"`
	FilenameExt  string        `mapstructure:"filename_ext"`
	Compiling    bool          `mapstructure:"compiling"`
	CompileCmd   string        `mapstructure:"compile_cmd"`
	CompileOpt   string        `mapstructure:"compile_opt"`
	ExeCmd       string        `mapstructure:"exe_cmd"`
	TimeLimit    time.Duration `mapstructure:"time_limit"`
	BuildTimeout time.Duration `mapstructure:"build_timeout"`
	// SubmitLanguageID is the judge's language id; derived from
	// FilenameExt when empty.
	SubmitLanguageID string `mapstructure:"submit_language_id"`
}

type SessionConfig struct {
	Username       string `mapstructure:"username"`
	CookieFilePath string `mapstructure:"cookie_file_path"`
	BaseURL        string `mapstructure:"base_url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("language.lang", "C++")
	v.SetDefault("language.filename_ext", ".cpp")
	v.SetDefault("language.compiling", true)
	v.SetDefault("language.compile_cmd", "g++")
	v.SetDefault("language.compile_opt", "-std=c++17")
	v.SetDefault("language.exe_cmd", "./a.out")
	v.SetDefault("language.time_limit", runner.DefaultTimeLimit)
	v.SetDefault("language.build_timeout", time.Minute)
	v.SetDefault("language.submit_language_id", "")
	v.SetDefault("session.username", "")
	v.SetDefault("session.cookie_file_path", "~/.cache/atcoder_tool_session.json")
	v.SetDefault("session.base_url", "https://atcoder.jp")
	v.SetDefault("log.level", "warn")
}

// Load reads the TOML config at path. A missing file is not an error: the
// defaults apply. The file is never written.
func Load(path string) (*Config, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(expanded)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", expanded, err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Session.CookieFilePath, err = ExpandHome(cfg.Session.CookieFilePath); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

// secondsHook reads a bare number given for a duration as seconds, so
// time_limit = 2 means two seconds rather than two nanoseconds.
func secondsHook(from, to reflect.Type, data any) (any, error) {
	if to != durationType || from == durationType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.Duration(reflect.ValueOf(data).Int()) * time.Second, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return time.Duration(reflect.ValueOf(data).Uint()) * time.Second, nil
	case reflect.Float32, reflect.Float64:
		return time.Duration(reflect.ValueOf(data).Float() * float64(time.Second)), nil
	case reflect.String:
		if secs, err := strconv.ParseFloat(strings.TrimSpace(reflect.ValueOf(data).String()), 64); err == nil {
			return time.Duration(secs * float64(time.Second)), nil
		}
	}
	return data, nil
}

// Build returns the build settings handed to the runner.
func (c *Config) Build() runner.BuildConfig {
	return runner.BuildConfig{
		Extension:      c.Language.FilenameExt,
		Compiling:      c.Language.Compiling,
		CompileCommand: c.Language.CompileCmd,
		CompileFlags:   c.Language.CompileOpt,
		ExecuteCommand: c.Language.ExeCmd,
	}
}

// LanguageID returns the judge language id used for submissions.
func (c *Config) LanguageID() string {
	if c.Language.SubmitLanguageID != "" {
		return c.Language.SubmitLanguageID
	}
	return DetectLanguage(c.Language.FilenameExt)
}

// TODO: cover the rest of the judge's language list (Kotlin, C#, Haskell...)
// DetectLanguage maps a source extension to the judge's language id
func DetectLanguage(ext string) string {
	switch strings.ToLower(ext) {
	case ".cpp", ".cc", ".cxx":
		return "5001" // C++ 20 (gcc 12.2)
	case ".c":
		return "5017" // C (gcc 12.2.0)
	case ".py":
		return "5055" // Python (CPython 3.11.4)
	case ".go":
		return "5002" // Go (go 1.20.6)
	case ".rs":
		return "5054" // Rust (rustc 1.70.0)
	case ".java":
		return "5005" // Java (OpenJDK 17)
	case ".js":
		return "5009" // JavaScript (Node.js 18.16.1)
	default:
		return ""
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
