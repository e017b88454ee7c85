package trash

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/shellkit/internal/toolerrors"
)

const (
	extensionSubjectConstant          = "extension"
	extensionSeparatorConstant        = "."
	extensionContainsSeparatorMessage = "extension must not contain a path separator"
)

var errExtensionContainsSeparator = errors.New(extensionContainsSeparatorMessage)

// WalkErrorHandler receives paths the walk could not read. Returning nil skips the entry.
type WalkErrorHandler func(path string, walkError error) error

// NormalizeExtension strips leading dots and whitespace. An empty value yields the default extension.
func NormalizeExtension(rawExtension string) (string, error) {
	trimmedExtension := strings.TrimLeft(strings.TrimSpace(rawExtension), extensionSeparatorConstant)
	if len(trimmedExtension) == 0 {
		return defaultExtensionConstant, nil
	}
	if strings.ContainsRune(trimmedExtension, '/') || strings.ContainsRune(trimmedExtension, filepath.Separator) {
		return "", toolerrors.InvalidArgument(extensionSubjectConstant, errExtensionContainsSeparator)
	}
	return trimmedExtension, nil
}

// FindMatches walks root recursively and returns regular files whose base name ends with .<extension>.
// Directories and symbolic links never match.
func FindMatches(root string, extension string, onWalkError WalkErrorHandler) ([]string, error) {
	suffix := extensionSeparatorConstant + extension
	matches := make([]string, 0)

	walkError := filepath.WalkDir(root, func(path string, entry fs.DirEntry, entryError error) error {
		if entryError != nil {
			if onWalkError == nil || path == root {
				return entryError
			}
			return onWalkError(path, entryError)
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		if strings.HasSuffix(entry.Name(), suffix) {
			matches = append(matches, path)
		}
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}

	sort.Strings(matches)
	return matches, nil
}
