// Package i18n resolves user-facing strings for the CLI and for plugins.
// Locale catalogs are embedded yaml files; lookups fall back per key to the
// base locale, and a key absent everywhere comes back as itself so output
// never goes blank.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the canonical source locale every other catalog falls back to.
const BaseLocale = "en"

//go:embed locales/*.yaml
var embeddedLocaleFS embed.FS

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale catalog plus the language matcher built
// over them.
type Bundle struct {
	locales map[string]map[string]string
	codes   []string
	matcher language.Matcher
}

// Load returns the bundle backed by the embedded catalogs.
func Load() (*Bundle, error) {
	return LoadFromFS(embeddedLocaleFS)
}

// LoadFromFS loads locale catalogs from the provided filesystem.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("i18n: no locale catalogs found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]map[string]string{}}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", path, err)
		}
		var file localeFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", path, err)
		}
		code := strings.TrimSpace(file.Locale)
		if code == "" {
			return nil, fmt.Errorf("i18n: %s: locale is required", path)
		}
		if fromPath := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)); code != fromPath {
			return nil, fmt.Errorf("i18n: %s: locale %q must match filename locale %q", path, code, fromPath)
		}
		if len(file.Messages) == 0 {
			return nil, fmt.Errorf("i18n: %s: messages map is required", path)
		}
		if _, exists := bundle.locales[code]; exists {
			return nil, fmt.Errorf("i18n: locale %q defined twice", code)
		}
		bundle.locales[code] = file.Messages
	}
	if _, ok := bundle.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("i18n: base locale %s is not defined", BaseLocale)
	}
	if err := bundle.register(); err != nil {
		return nil, err
	}
	return bundle, nil
}

// register parses every locale into a tag, fills per-key gaps from the base
// locale, publishes the strings to the x/text message catalog, and builds
// the matcher. The base locale sits first so matcher ties resolve to it.
func (b *Bundle) register() error {
	codes := make([]string, 0, len(b.locales))
	for code := range b.locales {
		if code != BaseLocale {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	b.codes = append([]string{BaseLocale}, codes...)

	base := b.locales[BaseLocale]
	tags := make([]language.Tag, 0, len(b.codes))
	for _, code := range b.codes {
		tag, err := language.Parse(code)
		if err != nil {
			return fmt.Errorf("i18n: parse locale tag %q: %w", code, err)
		}
		tags = append(tags, tag)
		messages := b.locales[code]
		for key, value := range base {
			if _, ok := messages[key]; !ok {
				messages[key] = value
			}
		}
		keys := make([]string, 0, len(messages))
		for key := range messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			message.SetString(tag, key, messages[key])
		}
	}
	b.matcher = language.NewMatcher(tags)
	return nil
}

// Locales returns the available locale codes, base locale first.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return append([]string{}, b.codes...)
}

// Resolve matches a preferred language (a BCP 47 tag such as "es-MX")
// against the loaded catalogs and returns the closest locale. Unknown or
// empty input resolves to the base locale. The result is never nil.
func (b *Bundle) Resolve(preferred string) *Locale {
	code := BaseLocale
	if b != nil && strings.TrimSpace(preferred) != "" {
		if tag, err := language.Parse(preferred); err == nil {
			if _, idx, conf := b.matcher.Match(tag); conf > language.No {
				code = b.codes[idx]
			}
		}
	}
	tag := language.Make(code)
	return &Locale{bundle: b, code: code, printer: message.NewPrinter(tag)}
}

// Locale is the translation facade handed to plugins.
type Locale struct {
	bundle  *Bundle
	code    string
	printer *message.Printer
}

// T returns the message for key, falling back to the base locale and then
// to the key itself.
func (l *Locale) T(key string) string {
	if l == nil || l.bundle == nil {
		return key
	}
	if messages, ok := l.bundle.locales[l.code]; ok {
		if value, ok := messages[key]; ok {
			return value
		}
	}
	if messages, ok := l.bundle.locales[BaseLocale]; ok {
		if value, ok := messages[key]; ok {
			return value
		}
	}
	return key
}

// Tf formats a parameterized message through the locale's printer.
func (l *Locale) Tf(key string, args ...any) string {
	if l == nil || l.printer == nil {
		return key
	}
	return l.printer.Sprintf(key, args...)
}

// Language returns the resolved locale code.
func (l *Locale) Language() string {
	if l == nil {
		return BaseLocale
	}
	return l.code
}
