package filestore

import (
	"io"
	"os"

	"go.uber.org/zap"

	apperrors "rest-user-client/pkg/errors"
)

// Store persists and retrieves a single string per file. Writes replace the
// whole file, reads return the whole file, and the handle is released on
// every exit path. Contents are held in memory in full.
type Store struct {
	log *zap.Logger
}

// New creates a new file store
func New(log *zap.Logger) *Store {
	return &Store{log: log}
}

// Write stores contents verbatim at path, creating the file if absent and
// truncating it otherwise. Fails with *errors.FileError.
func (s *Store) Write(path, contents string) (err error) {
	s.log.Debug("writing file", zap.String("path", path), zap.Int("bytes", len(contents)))

	f, err := os.Create(path)
	if err != nil {
		s.log.Error("failed to open file for writing", zap.String("path", path), zap.Error(err))
		return apperrors.NewFileError("write", path, err)
	}
	defer func() {
		// A failed close after a clean write still loses data
		if cerr := f.Close(); cerr != nil && err == nil {
			err = apperrors.NewFileError("write", path, cerr)
		}
	}()

	if _, werr := io.WriteString(f, contents); werr != nil {
		s.log.Error("failed to write file", zap.String("path", path), zap.Error(werr))
		return apperrors.NewFileError("write", path, werr)
	}

	return nil
}

// Read returns the full contents of path as a string. Fails with
// *errors.FileError when the path is missing or unreadable.
func (s *Store) Read(path string) (string, error) {
	s.log.Debug("reading file", zap.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Error("failed to read file", zap.String("path", path), zap.Error(err))
		return "", apperrors.NewFileError("read", path, err)
	}

	return string(data), nil
}
