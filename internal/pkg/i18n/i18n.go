package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locales
var embedded embed.FS

type Translations map[string]string

var (
	locales = make(map[string]Translations)
	mu      sync.RWMutex
)

const (
	KeyStatusChanged      = "STATUS_CHANGED"
	KeyDepartmentAssigned = "DEPARTMENT_ASSIGNED"
	KeyNewComment         = "NEW_COMMENT"
	KeyNewReply           = "NEW_REPLY"
	KeyStatusEmailSubject = "STATUS_EMAIL_SUBJECT"
)

// LoadDefault loads the catalogs compiled into the binary.
func LoadDefault() error {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return err
	}
	return LoadTranslations(sub)
}

// LoadTranslations reads <locale>/notifications.yaml for every locale directory in fsys.
func LoadTranslations(fsys fs.FS) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		filePath := path.Join(locale, "notifications.yaml")

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			continue
		}

		var catalog struct {
			Notifications Translations `yaml:"NOTIFICATIONS"`
		}
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		locales[locale] = catalog.Notifications
	}

	return nil
}

func Translate(locale, key string) string {
	mu.RLock()
	empty := len(locales) == 0
	mu.RUnlock()
	if empty {
		_ = LoadDefault()
	}

	mu.RLock()
	defer mu.RUnlock()

	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if locale != "en" {
		if trans, ok := locales["en"]; ok {
			if val, ok := trans[key]; ok {
				return val
			}
		}
	}

	return key
}

// Format renders the catalog entry for key as a printf template.
func Format(locale, key string, args ...any) string {
	return fmt.Sprintf(Translate(locale, key), args...)
}
