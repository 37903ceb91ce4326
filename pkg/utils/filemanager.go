// =============================================================================
// SolarWinds CSV to SNMP Config Generator - File Manager Utility
// =============================================================================
//
// This module provides the file handling around the output write:
//   - Parent directory creation
//   - Overwrite confirmation prompting
//   - Backup of the displaced file before an overwrite
//
// OVERWRITE STRATEGY:
//   - An existing output file is never replaced without confirmation
//   - On a confirmed overwrite the old file is first copied aside to a
//     uuid-suffixed .bak sibling, so a wrong answer at the prompt cannot
//     destroy a hand-edited configuration
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Exists reports whether a file already exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureParentDir creates the parent directory of path if it does not exist.
//
// RETURNS:
//   - An error if the directory cannot be created.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}

// ConfirmOverwrite asks on out whether the file at path may be overwritten
// and reads the answer from in. Only an explicit "y" (case-insensitive)
// confirms; everything else, including an empty line or a closed stream,
// declines.
func ConfirmOverwrite(path string, in io.Reader, out io.Writer) bool {
	fmt.Fprintf(out, "Warning: File %s already exists. Overwrite? [y/N] ", path)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	return strings.EqualFold(strings.TrimSpace(line), "y")
}

// BackupFile copies the file at path to a uuid-suffixed .bak sibling.
//
// RETURNS:
//   - The path of the backup file.
//   - An error if the copy fails.
func BackupFile(path string) (string, error) {
	backupPath := fmt.Sprintf("%s.%s.bak", path, shortID())

	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for backup: %w", path, err)
	}
	defer src.Close()

	dst, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy %s to %s: %w", path, backupPath, err)
	}

	return backupPath, nil
}

// WriteFile writes data to path.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// shortID returns the first segment of a random UUID, enough to keep
// repeated backups of the same file from colliding.
func shortID() string {
	return strings.SplitN(uuid.New().String(), "-", 2)[0]
}
