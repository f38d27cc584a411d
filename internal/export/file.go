package export

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"qnote/internal/errors"
)

// WriteFile writes an export into dir under filename, creating the
// directory as needed. The data goes to a temp file first and is
// renamed into place, so a failed write never clobbers an existing
// export. Returns the final path.
func WriteFile(dir, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	path := filepath.Join(dir, filename)

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return "", errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return "", errors.NewInternal(err)
	}
	if err := file.Close(); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	if err := os.Rename(tempPath, path); err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return path, nil
}
