package veto

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/veto-dev/veto/internal/config"
	"github.com/veto-dev/veto/internal/git"
	"github.com/veto-dev/veto/internal/logging"
	"github.com/veto-dev/veto/internal/report"
)

func newLogger() (*zap.Logger, error) {
	return logging.New(flagVerbose)
}

// resolveRepo returns the worktree root that contains --repo (or the current
// directory when --repo is unset), falling back to that directory itself.
func resolveRepo(log *zap.Logger) (string, error) {
	start := flagRepo
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = cwd
	}
	start, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	root, err := git.FindRoot(start)
	if err != nil {
		log.Debug("no enclosing repository; using directory as given", zap.String("dir", start), zap.Error(err))
		return start, nil
	}
	return root, nil
}

// loadSettings layers defaults, the global config, the local (or --config)
// file and VETO_* environment overrides. It returns the local config path
// that was used, if any.
func loadSettings(root string, log *zap.Logger) (config.Settings, string, error) {
	s := config.Defaults()

	gcfg, gpath, err := config.LoadGlobal()
	switch {
	case err == nil:
		if s, err = s.Apply(gcfg); err != nil {
			return s, "", fmt.Errorf("%s: %w", gpath, err)
		}
		log.Debug("loaded global config", zap.String("path", gpath))
	case !errors.Is(err, config.ErrNoConfig):
		return s, "", err
	}

	var (
		lcfg  config.FileConfig
		lpath string
	)
	if flagConfig != "" {
		lpath = flagConfig
		lcfg, err = config.LoadFile(flagConfig)
	} else {
		lcfg, lpath, err = config.LoadLocal(root)
	}
	switch {
	case errors.Is(err, config.ErrNoConfig):
		// no repo-local file
	case err != nil:
		return s, "", err
	default:
		if config.IsDeprecated(lpath) {
			log.Warn("config file name is deprecated, rename it to veto.toml", zap.String("path", lpath))
		}
		if s, err = s.Apply(lcfg); err != nil {
			return s, "", fmt.Errorf("%s: %w", lpath, err)
		}
	}

	ecfg, err := config.LoadEnv()
	if err != nil {
		return s, "", err
	}
	if s, err = s.Apply(ecfg); err != nil {
		return s, "", fmt.Errorf("%s* environment: %w", config.EnvPrefix, err)
	}
	return s, lpath, nil
}

// colorFor reports whether output written to w should be colorized.
func colorFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return report.ColorEnabled(f, flagNoColor)
}

func pickString(cli, fallback string) string {
	if cli != "" {
		return cli
	}
	return fallback
}

func pickInt(cli int, set bool, fallback int) int {
	if set {
		return cli
	}
	return fallback
}
