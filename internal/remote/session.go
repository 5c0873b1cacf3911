package remote

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const cookiesKey = "cookies"

// Session persists the judge's cookies between invocations.
type Session struct {
	Path string
}

type storedCookie struct {
	Name  string `mapstructure:"name" json:"name"`
	Value string `mapstructure:"value" json:"value"`
}

// Exists reports whether a session file is present.
func (s *Session) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Load puts the stored cookies for u into jar. A missing file loads nothing.
func (s *Session) Load(jar http.CookieJar, u *url.URL) error {
	if !s.Exists() {
		return nil
	}
	v := s.viper()
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read session failed: %w", err)
	}
	var stored []storedCookie
	if err := v.UnmarshalKey(cookiesKey, &stored); err != nil {
		return fmt.Errorf("parse session failed: %w", err)
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	jar.SetCookies(u, cookies)
	return nil
}

// Save writes the cookies jar holds for u, readable only by the user.
func (s *Session) Save(jar http.CookieJar, u *url.URL) error {
	cookies := jar.Cookies(u)
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create session dir failed: %w", err)
	}

	v := s.viper()
	v.Set(cookiesKey, stored)
	if err := v.WriteConfigAs(s.Path); err != nil {
		return fmt.Errorf("write session failed: %w", err)
	}
	return nil
}

// Clear removes the session file. Removing a missing file is not an error.
func (s *Session) Clear() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session failed: %w", err)
	}
	return nil
}

// viper returns an instance bound to the session file. The format follows
// the file extension when viper knows it, JSON otherwise.
func (s *Session) viper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(s.Path)
	configType := "json"
	if ext := strings.TrimPrefix(filepath.Ext(s.Path), "."); slices.Contains(viper.SupportedExts, ext) {
		configType = ext
	}
	v.SetConfigType(configType)
	v.SetConfigPermissions(0o600)
	return v
}
