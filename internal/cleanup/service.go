package cleanup

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

const (
	loggerMissingMessageConstant        = "cleanup service logger not configured"
	executorMissingMessageConstant      = "cleanup service executor not configured"
	freeSpaceBeforeTemplateConstant     = "Free space on %s before cleanup: %s\n"
	freeSpaceAfterTemplateConstant      = "Free space on %s after cleanup: %s (reclaimed %s)\n"
	dryRunHeaderTemplateConstant        = "Cleanup plan (%d steps, nothing will be executed):\n"
	freeSpaceUnavailableMessageConstant = "free space probe failed"
	pipelineCompletedMessageConstant    = "cleanup completed"
	logFieldPathConstant                = "path"
	logFieldReclaimedBytesConstant      = "reclaimed_bytes"
)

// ErrLoggerNotConfigured indicates the service was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerMissingMessageConstant)

// ErrExecutorNotConfigured indicates the service was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// Options configure a single cleanup run.
type Options struct {
	Steps     []Step
	Elevation Elevation
	DiskPath  string
	DryRun    bool
}

// Result summarizes a cleanup run.
type Result struct {
	Records         []StepRecord
	FreeBytesBefore uint64
	FreeBytesAfter  uint64
	Planned         bool
}

// Service runs the cleanup pipeline and reports disk space around it.
type Service struct {
	logger   *zap.Logger
	executor CommandExecutor
	probe    FreeSpaceProbe
	output   io.Writer
}

// NewService validates dependencies and constructs a Service. A nil probe disables disk space reporting.
func NewService(logger *zap.Logger, executor CommandExecutor, probe FreeSpaceProbe, output io.Writer) (*Service, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if output == nil {
		output = io.Discard
	}
	return &Service{logger: logger, executor: executor, probe: probe, output: output}, nil
}

// Clean executes the configured steps fail-fast, or prints them when DryRun is set.
func (service *Service) Clean(executionContext context.Context, options Options) (Result, error) {
	pipeline := NewPipeline(options.Steps)
	environment := &Environment{
		Executor:  service.executor,
		Elevation: options.Elevation,
		Logger:    service.logger,
		Output:    service.output,
	}

	if options.DryRun {
		fmt.Fprintf(service.output, dryRunHeaderTemplateConstant, len(options.Steps))
		pipeline.Plan(environment)
		return Result{Records: pipeline.Records(), Planned: true}, nil
	}

	result := Result{}
	freeBefore, beforeAvailable := service.freeBytes(executionContext, options.DiskPath)
	if beforeAvailable {
		result.FreeBytesBefore = freeBefore
		fmt.Fprintf(service.output, freeSpaceBeforeTemplateConstant, options.DiskPath, FormatSize(int64(freeBefore)))
	}

	records, runError := pipeline.Run(executionContext, environment)
	result.Records = records

	freeAfter, afterAvailable := service.freeBytes(executionContext, options.DiskPath)
	if afterAvailable {
		result.FreeBytesAfter = freeAfter
	}
	if beforeAvailable && afterAvailable {
		reclaimedBytes := int64(freeAfter) - int64(freeBefore)
		fmt.Fprintf(service.output, freeSpaceAfterTemplateConstant, options.DiskPath, FormatSize(int64(freeAfter)), FormatSize(reclaimedBytes))
		service.logger.Info(pipelineCompletedMessageConstant, zap.String(logFieldPathConstant, options.DiskPath), zap.Int64(logFieldReclaimedBytesConstant, reclaimedBytes))
	}

	return result, runError
}

func (service *Service) freeBytes(executionContext context.Context, path string) (uint64, bool) {
	if service.probe == nil || len(path) == 0 {
		return 0, false
	}
	freeBytes, probeError := service.probe.FreeBytes(executionContext, path)
	if probeError != nil {
		service.logger.Warn(freeSpaceUnavailableMessageConstant, zap.String(logFieldPathConstant, path), zap.Error(probeError))
		return 0, false
	}
	return freeBytes, true
}
