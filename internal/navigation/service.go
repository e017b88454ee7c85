package navigation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/temirov/shellkit/internal/toolerrors"
)

const (
	defaultLevelCountConstant               = 1
	levelsSubjectConstant                   = "levels"
	workingDirectorySubjectConstant         = "working directory"
	levelsNotNumericTemplateConstant        = "%q is not a number"
	levelsNotPositiveMessageConstant        = "levels must be at least 1"
	levelsExceedDepthTemplateConstant       = "cannot ascend %d levels from %s (depth %d)"
	workingDirectoryRelativeMessageConstant = "working directory must be absolute"
)

var (
	errLevelsNotPositive        = errors.New(levelsNotPositiveMessageConstant)
	errWorkingDirectoryRelative = errors.New(workingDirectoryRelativeMessageConstant)
)

// ParseLevels interprets the optional levels argument. An empty value yields one level.
func ParseLevels(rawLevels string) (int, error) {
	trimmedLevels := strings.TrimSpace(rawLevels)
	if len(trimmedLevels) == 0 {
		return defaultLevelCountConstant, nil
	}

	parsedLevels, parseError := strconv.Atoi(trimmedLevels)
	if parseError != nil {
		return 0, toolerrors.InvalidArgument(levelsSubjectConstant, fmt.Errorf(levelsNotNumericTemplateConstant, trimmedLevels))
	}
	if parsedLevels < 1 {
		return 0, toolerrors.InvalidArgument(levelsSubjectConstant, errLevelsNotPositive)
	}
	return parsedLevels, nil
}

// Depth reports how many levels can be ascended from the absolute path before reaching the root.
func Depth(absolutePath string) int {
	cleanedPath := filepath.Clean(absolutePath)
	depth := 0
	for {
		parentPath := filepath.Dir(cleanedPath)
		if parentPath == cleanedPath {
			return depth
		}
		cleanedPath = parentPath
		depth++
	}
}

// ResolveAncestor returns the directory exactly levels above workingDirectory.
func ResolveAncestor(workingDirectory string, levels int) (string, error) {
	if levels < 1 {
		return "", toolerrors.InvalidArgument(levelsSubjectConstant, errLevelsNotPositive)
	}
	if !filepath.IsAbs(workingDirectory) {
		return "", toolerrors.InvalidArgument(workingDirectorySubjectConstant, errWorkingDirectoryRelative)
	}

	cleanedDirectory := filepath.Clean(workingDirectory)
	availableDepth := Depth(cleanedDirectory)
	if levels > availableDepth {
		return "", toolerrors.InvalidArgument(levelsSubjectConstant, fmt.Errorf(levelsExceedDepthTemplateConstant, levels, cleanedDirectory, availableDepth))
	}

	ancestorDirectory := cleanedDirectory
	for levelIndex := 0; levelIndex < levels; levelIndex++ {
		ancestorDirectory = filepath.Dir(ancestorDirectory)
	}
	return ancestorDirectory, nil
}
