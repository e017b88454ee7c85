package cleanup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/shellkit/internal/toolerrors"
)

const (
	defaultJournalRetentionConstant  = "7d"
	stepsSubjectConstant             = "steps"
	unsupportedStepTemplateConstant  = "unsupported cleanup step %q"
	duplicateStepTemplateConstant    = "cleanup step %q listed more than once"
	emptyStepListMessageConstant     = "at least one cleanup step must be configured"
	invalidRetentionTemplateConstant = "journal retention %q must be a number followed by a unit such as 7d or 2weeks"
	retentionSubjectConstant         = "journal_retention"
)

var errEmptyStepList = errors.New(emptyStepListMessageConstant)

// BuildOptions tunes individual steps.
type BuildOptions struct {
	JournalRetention string
}

// BuildSteps converts configured step names into executable steps, preserving order.
// An empty list yields the default pipeline.
func BuildSteps(stepNames []string, options BuildOptions) ([]Step, error) {
	retention := strings.TrimSpace(options.JournalRetention)
	if len(retention) == 0 {
		retention = defaultJournalRetentionConstant
	}
	if !isValidRetention(retention) {
		return nil, toolerrors.InvalidArgument(retentionSubjectConstant, fmt.Errorf(invalidRetentionTemplateConstant, retention))
	}

	requestedNames := make([]StepName, 0, len(stepNames))
	for _, rawName := range stepNames {
		trimmedName := strings.ToLower(strings.TrimSpace(rawName))
		if len(trimmedName) == 0 {
			continue
		}
		requestedNames = append(requestedNames, StepName(trimmedName))
	}
	if len(stepNames) > 0 && len(requestedNames) == 0 {
		return nil, toolerrors.InvalidArgument(stepsSubjectConstant, errEmptyStepList)
	}
	if len(requestedNames) == 0 {
		requestedNames = DefaultStepNames()
	}

	steps := make([]Step, 0, len(requestedNames))
	seenNames := make(map[StepName]struct{}, len(requestedNames))
	for _, stepName := range requestedNames {
		if _, duplicate := seenNames[stepName]; duplicate {
			return nil, toolerrors.InvalidArgument(stepsSubjectConstant, fmt.Errorf(duplicateStepTemplateConstant, stepName))
		}
		seenNames[stepName] = struct{}{}

		step, buildError := buildStep(stepName, retention)
		if buildError != nil {
			return nil, buildError
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func buildStep(stepName StepName, retention string) (Step, error) {
	switch stepName {
	case StepRemoveUnneeded:
		return newRemoveUnneededStep(), nil
	case StepPurgeResidual:
		return newPurgeResidualStep(), nil
	case StepClearCache:
		return newClearCacheStep(), nil
	case StepTruncateLogs:
		return newTruncateLogsStep(retention), nil
	case StepPurgeLocales:
		return newPurgeLocalesStep(), nil
	case StepRemoveOrphans:
		return newRemoveOrphansStep(), nil
	default:
		return nil, toolerrors.InvalidArgument(stepsSubjectConstant, fmt.Errorf(unsupportedStepTemplateConstant, stepName))
	}
}

func isValidRetention(retention string) bool {
	digitCount := 0
	for digitCount < len(retention) && retention[digitCount] >= '0' && retention[digitCount] <= '9' {
		digitCount++
	}
	if digitCount == 0 || digitCount == len(retention) {
		return false
	}
	for _, unitRune := range retention[digitCount:] {
		if (unitRune < 'a' || unitRune > 'z') && (unitRune < 'A' || unitRune > 'Z') {
			return false
		}
	}
	return true
}
