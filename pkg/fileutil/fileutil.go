package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// WriteFile writes data to path on the given filesystem with owner-only
// permissions, creating parent directories as needed.
func WriteFile(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := fs.MkdirAll(dir, ReadWriteExecuteUserReadExecuteOthers); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fs, path, data, ReadWriteUserPermission); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// AppendFile appends data to path on the given filesystem, creating the file
// with owner-only permissions when it does not exist. CI output files
// (GITHUB_OUTPUT, GITHUB_ENV) are append-only by contract.
func AppendFile(fs afero.Fs, path string, data []byte) error {
	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, ReadWriteUserPermission)
	if err != nil {
		return fmt.Errorf("failed to open file %s for append: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to append to file %s: %w", path, err)
	}
	return nil
}

// FileExists reports whether path exists on the filesystem and is a regular
// file.
func FileExists(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return !info.IsDir(), nil
}
