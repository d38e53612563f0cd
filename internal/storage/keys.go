package storage

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const uploadPrefix = "uploads/"

var whitespace = regexp.MustCompile(`\s+`)

// BuildKey names a new object: uploads/<id>-<file name with whitespace runs turned into '-'>.
func BuildKey(id uuid.UUID, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" {
		name = "file"
	}
	return fmt.Sprintf("%s%s-%s", uploadPrefix, id, whitespace.ReplaceAllString(name, "-"))
}

// KeyFromLocator returns the object key for a stored locator. Locators are normally bare
// keys; older rows hold a full object URL, virtual-hosted or path-style.
func KeyFromLocator(locator, bucket string) string {
	if !strings.HasPrefix(locator, "http://") && !strings.HasPrefix(locator, "https://") {
		return locator
	}

	u, err := url.Parse(locator)
	if err != nil {
		return locator
	}

	key := strings.TrimPrefix(u.Path, "/")
	if bucket != "" {
		key = strings.TrimPrefix(key, bucket+"/")
	}
	return key
}
