package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atcoder-tool.toml")
	data := `
[language]
lang = "Python"
filename_ext = ".py"
compiling = false
exe_cmd = "python3 {source}"
time_limit = "3s"

[session]
username = "tourist"
cookie_file_path = "/tmp/session.json"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language.Lang != "Python" || cfg.Language.Compiling {
		t.Errorf("Language = %+v", cfg.Language)
	}
	if cfg.Language.TimeLimit != 3*time.Second {
		t.Errorf("TimeLimit = %v, want 3s", cfg.Language.TimeLimit)
	}
	// Unset keys keep their defaults.
	if cfg.Language.BuildTimeout != time.Minute {
		t.Errorf("BuildTimeout = %v, want 1m", cfg.Language.BuildTimeout)
	}
	if cfg.Session.Username != "tourist" || cfg.Session.CookieFilePath != "/tmp/session.json" {
		t.Errorf("Session = %+v", cfg.Session)
	}

	b := cfg.Build()
	if b.Extension != ".py" || b.Compiling || b.ExecuteCommand != "python3 {source}" {
		t.Errorf("Build = %+v", b)
	}
	if id := cfg.LanguageID(); id != "5055" {
		t.Errorf("LanguageID = %q, want 5055", id)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b := cfg.Build()
	if b.Extension != ".cpp" || !b.Compiling || b.CompileCommand != "g++" || b.CompileFlags != "-std=c++17" || b.ExecuteCommand != "./a.out" {
		t.Errorf("default Build = %+v", b)
	}
	if cfg.Language.TimeLimit != 2*time.Second {
		t.Errorf("default TimeLimit = %v", cfg.Language.TimeLimit)
	}
	if !filepath.IsAbs(cfg.Session.CookieFilePath) {
		t.Errorf("CookieFilePath = %q, want ~ expanded", cfg.Session.CookieFilePath)
	}
}

func TestLoad_DoesNotCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atcoder-tool.toml")
	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("config file was written: %v", err)
	}
}

func TestLoad_BareNumberDurationsAreSeconds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atcoder-tool.toml")
	data := `
[language]
time_limit = 2
build_timeout = 1.5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language.TimeLimit != 2*time.Second {
		t.Errorf("TimeLimit = %v, want 2s", cfg.Language.TimeLimit)
	}
	if cfg.Language.BuildTimeout != 1500*time.Millisecond {
		t.Errorf("BuildTimeout = %v, want 1.5s", cfg.Language.BuildTimeout)
	}
}

func TestLoad_EnvBareNumberDuration(t *testing.T) {
	t.Setenv("ATC_LANGUAGE_TIME_LIMIT", "4")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language.TimeLimit != 4*time.Second {
		t.Errorf("TimeLimit = %v, want 4s", cfg.Language.TimeLimit)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ATC_LANGUAGE_EXE_CMD", "./main")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language.ExeCmd != "./main" {
		t.Errorf("ExeCmd = %q, want env override", cfg.Language.ExeCmd)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[language\nlang = "), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestDetectLanguage(t *testing.T) {
	if got := DetectLanguage(".CPP"); got != "5001" {
		t.Errorf("DetectLanguage(.CPP) = %q", got)
	}
	if got := DetectLanguage(".unknown"); got != "" {
		t.Errorf("DetectLanguage(.unknown) = %q, want empty", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.cache/x.json")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".cache/x.json"); got != want {
		t.Errorf("ExpandHome = %q, want %q", got, want)
	}
	if got, _ := ExpandHome("/abs"); got != "/abs" {
		t.Errorf("ExpandHome(/abs) = %q", got)
	}
}
