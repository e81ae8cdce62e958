package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "salescli/internal/errors"
	"salescli/internal/files"
)

// Expander extracts compressed archives found in a data directory.
type Expander struct {
	logger *slog.Logger
}

// NewExpander creates a new archive expander
func NewExpander(logger *slog.Logger) *Expander {
	if logger == nil {
		logger = slog.Default()
	}
	return &Expander{logger: logger}
}

// ExpandAll extracts every ZIP archive in dir into dir itself and returns the
// names of the archives that were expanded. A corrupt or unreadable archive
// aborts the whole operation; there is no per-file isolation.
func (e *Expander) ExpandAll(ctx context.Context, dir string) ([]string, error) {
	discovery := files.NewDiscovery(dir)
	archives, err := discovery.FindArchiveFiles(".")
	if err != nil {
		return nil, apperrors.NewArchiveError("failed to scan directory for archives", err).
			WithContext("dir", dir)
	}

	expanded := make([]string, 0, len(archives))
	for _, archiveFile := range archives {
		if err := ctx.Err(); err != nil {
			return expanded, err
		}

		if err := e.expandOne(archiveFile.Path, dir); err != nil {
			return expanded, err
		}

		e.logger.InfoContext(ctx, "extracted archive",
			slog.String("archive", archiveFile.Name),
			slog.String("dir", dir))
		expanded = append(expanded, archiveFile.Name)
	}

	e.logger.InfoContext(ctx, "archive expansion complete",
		slog.String("dir", dir),
		slog.Int("archive_count", len(expanded)))

	return expanded, nil
}

// expandOne extracts a single ZIP archive into destDir.
func (e *Expander) expandOne(zipPath, destDir string) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return apperrors.NewArchiveError("failed to open archive", err).
			WithContext("path", zipPath)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if err := e.extractEntry(entry, destDir); err != nil {
			return apperrors.NewArchiveError("failed to extract archive entry", err).
				WithContext("path", zipPath).
				WithContext("entry", entry.Name)
		}
	}

	return nil
}

// extractEntry writes one archive entry to destDir, rejecting paths that
// escape the destination directory.
func (e *Expander) extractEntry(entry *zip.File, destDir string) error {
	target, err := sanitizeEntryPath(destDir, entry.Name)
	if err != nil {
		return err
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", entry.Name, err)
	}

	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to open entry %s: %w", entry.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	return nil
}

// sanitizeEntryPath resolves an archive entry name inside destDir and rejects
// entries that would escape it.
func sanitizeEntryPath(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.Clean(name))

	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("entry %q escapes destination directory", name)
	}

	return target, nil
}
