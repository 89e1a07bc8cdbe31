// Package i18n localises every user-visible label of the seed and balance
// screens. Translations are YAML files embedded from locales/ and loaded
// through go-i18n.
package i18n

import (
	"embed"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	localizer *i18n.Localizer
	lang      string
	available []string
)

// Init loads every embedded locale and selects lang. Unknown languages fall
// back to English.
func Init(l string) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	var tags []string
	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			continue
		}
		if _, err := b.ParseMessageFileBytes(data, f.Name()); err != nil {
			slog.Warn("skipping locale file", "file", f.Name(), "error", err)
			continue
		}
		tags = append(tags, strings.TrimSuffix(f.Name(), ".yaml"))
	}
	sort.Strings(tags)

	mu.Lock()
	defer mu.Unlock()
	localizer = i18n.NewLocalizer(b, l, language.English.String())
	lang = l
	available = tags
}

// T translates messageID. A missing ID is returned unchanged.
func T(messageID string) string {
	return Tf(messageID, nil)
}

// Tf translates messageID with template data.
func Tf(messageID string, data map[string]any) string {
	mu.RLock()
	loc := localizer
	mu.RUnlock()
	if loc == nil {
		Init("en")
		mu.RLock()
		loc = localizer
		mu.RUnlock()
	}

	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
	if err != nil {
		return messageID
	}
	return msg
}

// Lang returns the language passed to the last Init.
func Lang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// Available lists the embedded locale tags.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()
	return append([]string(nil), available...)
}
