package loc

import (
	"path"
	"strings"

	"github.com/src-d/enry/v2"
)

// TypeOther tags files whose type cannot be determined.
const TypeOther = "other"

// TypeFor returns the type tag for a file path: its lower-cased extension,
// or for extensionless files the language enry derives from the file name.
func TypeFor(filePath string) string {
	base := path.Base(filePath)

	ext := strings.TrimPrefix(path.Ext(base), ".")
	if ext != "" && ext != base[1:] {
		return strings.ToLower(ext)
	}

	lang, _ := enry.GetLanguageByFilename(base)
	if lang != "" {
		return strings.ToLower(lang)
	}

	return TypeOther
}
