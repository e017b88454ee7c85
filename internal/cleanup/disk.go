package cleanup

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
)

const (
	byteUnitConstant           = 1024
	byteSizeTemplateConstant   = "%d B"
	scaledSizeTemplateConstant = "%.1f %ciB"
	byteUnitPrefixesConstant   = "KMGTPE"
)

// FreeSpaceProbe reports free bytes on the filesystem holding a path.
type FreeSpaceProbe interface {
	FreeBytes(executionContext context.Context, path string) (uint64, error)
}

// DiskUsageProbe reads filesystem statistics through gopsutil.
type DiskUsageProbe struct{}

// FreeBytes returns the bytes available on the filesystem containing path.
func (DiskUsageProbe) FreeBytes(executionContext context.Context, path string) (uint64, error) {
	usage, usageError := disk.UsageWithContext(executionContext, path)
	if usageError != nil {
		return 0, usageError
	}
	return usage.Free, nil
}

// FormatSize renders a byte count with binary units.
func FormatSize(byteCount int64) string {
	magnitude := byteCount
	if magnitude < 0 {
		magnitude = -magnitude
	}
	if magnitude < byteUnitConstant {
		return fmt.Sprintf(byteSizeTemplateConstant, byteCount)
	}

	divisor := int64(byteUnitConstant)
	exponent := 0
	for scaled := magnitude / byteUnitConstant; scaled >= byteUnitConstant && exponent < len(byteUnitPrefixesConstant)-1; scaled /= byteUnitConstant {
		divisor *= byteUnitConstant
		exponent++
	}
	return fmt.Sprintf(scaledSizeTemplateConstant, float64(byteCount)/float64(divisor), byteUnitPrefixesConstant[exponent])
}
