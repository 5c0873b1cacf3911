// cmd/helpers.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chibuka/atc-cli/internal/config"
	"github.com/chibuka/atc-cli/internal/logging"
	"github.com/chibuka/atc-cli/internal/remote"
	"go.uber.org/zap"
)

// env is what every subcommand needs: settings, a logger and the contest
// directory it operates on.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	root   string
}

func loadEnv() (*env, error) {
	path := cfgPath
	if path == "" {
		path = os.Getenv(config.EnvPrefix + "_CONFIG")
	}
	if path == "" {
		path = config.ConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level)
	if err != nil {
		return nil, err
	}

	root := contestDir
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
	}
	if root, err = filepath.Abs(root); err != nil {
		return nil, fmt.Errorf("failed to resolve contest directory: %w", err)
	}

	logger.Debug("environment loaded", zap.String("config", path), zap.String("root", root))
	return &env{cfg: cfg, logger: logger, root: root}, nil
}

// contest is the contest id, taken from the name of the contest directory.
func (e *env) contest() string {
	return filepath.Base(e.root)
}

func (e *env) session() *remote.Session {
	return &remote.Session{Path: e.cfg.Session.CookieFilePath}
}

// newJudge builds the remote judge for e. Tests replace it with a fake.
var newJudge = func(e *env) (remote.Judge, error) {
	c, err := remote.New(e.cfg.Session.BaseURL, e.session(), e.logger)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (e *env) client() (remote.Judge, error) {
	return newJudge(e)
}
