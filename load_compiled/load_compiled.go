// Package load_compiled loads compiled catalog files from the locale identifier
package load_compiled

import (
	"fmt"
	"os"
	"strings"

	"github.com/dakusan/i18nops/i18n"
)

// File loads a single compiled catalog file
func File(path string, isCompressed bool) (*i18n.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return i18n.LoadCatalog(f, isCompressed)
}

// Load loads the compiled catalog of a locale
func Load(compiledDirectoryPath, localeIdentifier string, isCompressed bool) (*i18n.Catalog, error) {
	cat, err := File(addSlash(compiledDirectoryPath)+localeIdentifier+fileExt(isCompressed), isCompressed)
	if err != nil {
		return nil, fmt.Errorf("Error loading “%s”: %s", localeIdentifier, err.Error())
	} else if cat.LocaleIdentifier != localeIdentifier {
		return nil, fmt.Errorf("Error loading “%s”: file holds locale “%s”", localeIdentifier, cat.LocaleIdentifier)
	}
	return cat, nil
}

// LoadAll loads every compiled catalog in a directory, keyed by locale identifier
func LoadAll(compiledDirectoryPath string, isCompressed bool) (map[string]*i18n.Catalog, error) {
	d, err := os.ReadDir(compiledDirectoryPath)
	if err != nil {
		return nil, fmt.Errorf("Error reading compiled directory: %s", err.Error())
	}

	ext := fileExt(isCompressed)
	ret := make(map[string]*i18n.Catalog)
	for _, f := range d {
		name := f.Name()
		if f.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}

		if cat, err := Load(compiledDirectoryPath, name[0:len(name)-len(ext)], isCompressed); err != nil {
			return nil, err
		} else {
			ret[cat.LocaleIdentifier] = cat
		}
	}

	return ret, nil
}

func fileExt(isCompressed bool) string {
	if isCompressed {
		return i18n.CatalogExtensionCompressed
	}
	return i18n.CatalogExtension
}

func addSlash(path string) string {
	if len(path) == 0 || (path[len(path)-1] != '/' && path[len(path)-1] != '\\') {
		path = path + "/"
	}
	return path
}
