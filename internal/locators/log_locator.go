package locators

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/loggers"
)

const (
	DefaultPrefix = "nginx-access-ui.log"

	compressedExt = ".gz"
)

const (
	reasonPatternMismatch = "pattern_mismatch"
	reasonInvalidDate     = "invalid_date"
	reasonIsDirectory     = "is_directory"
	reasonNotRegularFile  = "not_regular_file"
)

var (
	ErrLogDirUnreadable = errors.New("log directory unreadable")
)

// LogLocator picks the most recent log file of a directory by the date embedded in its name.
//
// A candidate is named "<prefix>-YYYYMMDD" or "<prefix>-YYYYMMDD.gz", nothing else may follow.
// Among candidates with a valid date the greatest date wins; candidates sharing that date are
// decided by the lexically smallest file name, so a plain file beats its gzipped twin.
//
//go:generate mockgen -source=log_locator.go -destination=./mocks/log_locator_mock.go -package=mocks
type LogLocator interface {
	// Locate returns found == false when no candidate exists. A missing or unreadable
	// directory is an error.
	Locate(ctx context.Context, dir string) (descriptor models.LogDescriptor, found bool, err error)
}

type logLocator struct {
	pattern *regexp.Regexp
}

func NewLogLocator(prefix string) LogLocator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &logLocator{
		pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `-(\d{8})(\.gz)?$`),
	}
}

func (l *logLocator) Locate(ctx context.Context, dir string) (models.LogDescriptor, bool, error) {
	logger := loggers.Ctx(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return models.LogDescriptor{}, false, fmt.Errorf("%w: %q: %w", ErrLogDirUnreadable, dir, err)
	}

	var (
		best  models.LogDescriptor
		found bool
	)
	for _, entry := range entries {
		name := entry.Name()

		match := l.pattern.FindStringSubmatch(name)
		if match == nil {
			l.skip(logger, name, reasonPatternMismatch, nil)
			continue
		}
		if reason, err := entryKind(dir, entry); reason != "" {
			l.skip(logger, name, reason, err)
			continue
		}
		date, err := models.ParseLogDate(match[1])
		if err != nil {
			l.skip(logger, name, reasonInvalidDate, err)
			continue
		}

		candidate := models.LogDescriptor{
			FullPath:     filepath.Join(dir, name),
			FileName:     name,
			Date:         date,
			IsCompressed: match[2] == compressedExt,
		}
		if !found || isPreferred(candidate, best) {
			best, found = candidate, true
		}
	}

	if found {
		logger.Debug().
			Str(loggers.FieldFile, best.FileName).
			Str(loggers.FieldReportDate, best.Date.Dotted()).
			Msg("log file selected")
	}
	return best, found, nil
}

// entryKind returns an empty reason for a regular file, following symlinks, and the
// skip reason otherwise. A dangling symlink is not a regular file.
func entryKind(dir string, entry fs.DirEntry) (string, error) {
	mode := entry.Type()
	if mode&fs.ModeSymlink != 0 {
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil {
			return reasonNotRegularFile, err
		}
		mode = info.Mode()
	}

	switch {
	case mode.IsDir():
		return reasonIsDirectory, nil
	case !mode.IsRegular():
		return reasonNotRegularFile, nil
	}
	return "", nil
}

// isPreferred reports whether candidate should replace current: later date first,
// then lexically smaller name.
func isPreferred(candidate, current models.LogDescriptor) bool {
	if candidate.Date.After(current.Date) {
		return true
	}
	return candidate.Date.Equal(current.Date) && candidate.FileName < current.FileName
}

func (l *logLocator) skip(logger *loggers.Logger, name, reason string, err error) {
	metricEntriesSkippedTotal.WithLabelValues(reason).Inc()
	logger.Debug().
		Err(err).
		Str(loggers.FieldFile, name).
		Str(loggers.FieldReason, reason).
		Msg("directory entry skipped")
}
