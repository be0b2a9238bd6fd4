// Package naming derives the destination path and enforces the overwrite
// policy. The default destination is the input path with its extension
// replaced by .mkv; writing over an existing file requires --force.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputPath returns the destination for input: the explicit override when
// given, otherwise a sibling file with a .mkv extension. An input with no
// extension gets .mkv appended.
func OutputPath(input, override string) string {
	if override != "" {
		return override
	}
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".mkv"
}

// CheckDestination validates the resolved destination before any work runs.
// It rejects a destination equal to the input (mkvmerge would truncate its
// own source) and, unless force is set, an already existing file.
func CheckDestination(input, output string, force bool) error {
	if sameFile(input, output) {
		return fmt.Errorf("destination %s is the input file", output)
	}
	if force {
		return nil
	}
	if _, err := os.Stat(output); err == nil {
		return fmt.Errorf("destination %s already exists (use --force to overwrite)", output)
	}
	return nil
}

// sameFile compares cleaned absolute paths; on platforms with stat identity
// it also catches hardlinked duplicates.
func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	fiA, errA2 := os.Stat(a)
	fiB, errB2 := os.Stat(b)
	return errA2 == nil && errB2 == nil && os.SameFile(fiA, fiB)
}
