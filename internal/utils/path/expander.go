// Package pathutils expands user-supplied paths from flags and configuration.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// EnvironmentLookup resolves environment variables referenced as $NAME or ${NAME}.
type EnvironmentLookup func(name string) (string, bool)

// Expander resolves a leading tilde and environment references in configured paths.
type Expander struct {
	homeDirectoryProvider HomeDirectoryProvider
	environmentLookup     EnvironmentLookup
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewExpander constructs an Expander backed by the operating system.
func NewExpander() *Expander {
	return NewExpanderWithProviders(os.UserHomeDir, os.LookupEnv)
}

// NewExpanderWithProviders constructs an Expander with custom lookups. Nil values fall back to the operating system.
func NewExpanderWithProviders(homeDirectoryProvider HomeDirectoryProvider, environmentLookup EnvironmentLookup) *Expander {
	if homeDirectoryProvider == nil {
		homeDirectoryProvider = os.UserHomeDir
	}
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}
	return &Expander{homeDirectoryProvider: homeDirectoryProvider, environmentLookup: environmentLookup}
}

// Expand trims the path, substitutes environment references and resolves a leading ~ or ~/.
// Unknown variables expand to an empty string; ~user forms are returned unchanged.
func (expander *Expander) Expand(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if expander == nil || len(trimmedPath) == 0 {
		return trimmedPath
	}

	expandedPath := os.Expand(trimmedPath, func(name string) string {
		value, _ := expander.environmentLookup(name)
		return value
	})

	if !strings.HasPrefix(expandedPath, tildeSymbolConstant) {
		return expandedPath
	}

	homeDirectory := expander.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return expandedPath
	}

	switch {
	case expandedPath == tildeSymbolConstant:
		return homeDirectory
	case strings.HasPrefix(expandedPath, tildeForwardSlashPrefixConstant):
		return filepath.Join(homeDirectory, strings.TrimPrefix(expandedPath, tildeForwardSlashPrefixConstant))
	case strings.HasPrefix(expandedPath, tildeSymbolConstant+string(os.PathSeparator)):
		return filepath.Join(homeDirectory, expandedPath[len(tildeSymbolConstant)+1:])
	default:
		return expandedPath
	}
}

func (expander *Expander) resolveHomeDirectory() string {
	expander.initializationGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
	})
	if expander.homeDirectoryError != nil {
		return ""
	}
	return expander.homeDirectory
}
