package cleanup

import (
	"bufio"
	"strings"
)

const (
	residualConfigurationStatusConstant = "rc"
	commentPrefixConstant               = "#"
)

// ParseResidualPackages extracts package names in the rc state (removed, configuration files remaining)
// from dpkg --list output.
func ParseResidualPackages(dpkgListOutput string) []string {
	packageNames := make([]string, 0)
	scanner := bufio.NewScanner(strings.NewReader(dpkgListOutput))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != residualConfigurationStatusConstant {
			continue
		}
		packageNames = append(packageNames, fields[1])
	}
	return packageNames
}

// ParseOrphanPackages extracts package names from deborphan output, one per line.
func ParseOrphanPackages(deborphanOutput string) []string {
	packageNames := make([]string, 0)
	scanner := bufio.NewScanner(strings.NewReader(deborphanOutput))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], commentPrefixConstant) {
			continue
		}
		packageNames = append(packageNames, fields[0])
	}
	return packageNames
}
