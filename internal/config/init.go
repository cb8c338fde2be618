package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/trellishq/trellis/internal/layout"
)

//go:embed defaults
var defaultsFS embed.FS

const (
	defaultConfigAsset    = "defaults/config.yaml"
	defaultTemplatesAsset = "defaults/templates"
)

// Init materializes the .trellis state directory under projectDir: the
// directory tree, a starter config.yaml, and the default template set.
// Files already on disk are never touched, so running it twice is safe and
// user edits survive.
func Init(projectDir string) error {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return fmt.Errorf("config: resolve project dir: %w", err)
	}
	lay := layout.New(abs)

	for _, dir := range lay.StateDirs() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	if err := seedFile(lay.ConfigPath(), defaultConfigAsset); err != nil {
		return err
	}
	return seedTemplates(lay.TemplatesDir())
}

// seedTemplates copies the embedded template tree into dir, keeping relative
// paths and skipping anything that already exists.
func seedTemplates(dir string) error {
	return fs.WalkDir(defaultsFS, defaultTemplatesAsset, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("config: walk defaults: %w", err)
		}
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(path, defaultTemplatesAsset+"/")
		return seedFile(filepath.Join(dir, filepath.FromSlash(rel)), path)
	})
}

// seedFile writes one embedded asset to path unless something is already
// there.
func seedFile(path, asset string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	data, err := defaultsFS.ReadFile(asset)
	if err != nil {
		return fmt.Errorf("config: read default %s: %w", asset, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
