package parsers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"sync/atomic"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/loggers"

	"github.com/klauspost/compress/gzip"
)

const (
	initialLineBytes = 64 * 1024
	maxLineBytes     = 1024 * 1024
)

var (
	ErrOpenFailed       = errors.New("failed to open log")
	ErrReadFailed       = errors.New("failed to read log")
	ErrSequenceConsumed = errors.New("record sequence already consumed")
)

//go:generate mockgen -source=record_parser.go -destination=./mocks/record_parser_mock.go -package=mocks
type RecordParser interface {
	// Parse prepares a stream over the descriptor's file. Nothing is opened until
	// the stream's records are iterated.
	Parse(descriptor models.LogDescriptor) *RecordStream
}

type recordParser struct{}

func NewRecordParser() RecordParser {
	return &recordParser{}
}

func (p *recordParser) Parse(descriptor models.LogDescriptor) *RecordStream {
	return newRecordStream(func() (io.ReadCloser, error) {
		return openLog(descriptor)
	})
}

// Stats counts the lines seen by a stream.
type Stats struct {
	Lines     int64
	Malformed int64
}

// MalformedRatio returns Malformed/Lines, zero when no line was read.
func (s Stats) MalformedRatio() float64 {
	if s.Lines == 0 {
		return 0
	}
	return float64(s.Malformed) / float64(s.Lines)
}

// RecordStream is a forward-only, single-pass source of log records.
type RecordStream struct {
	open     func() (io.ReadCloser, error)
	consumed atomic.Bool
	lines    atomic.Int64
	bad      atomic.Int64
}

func newRecordStream(open func() (io.ReadCloser, error)) *RecordStream {
	return &RecordStream{open: open}
}

// NewReaderStream streams records from r. Closing r stays with the caller.
func NewReaderStream(r io.Reader) *RecordStream {
	return newRecordStream(func() (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	})
}

// Stats reports the lines read so far.
func (s *RecordStream) Stats() Stats {
	return Stats{Lines: s.lines.Load(), Malformed: s.bad.Load()}
}

// Records yields one record per well-formed line. Malformed lines are logged and skipped.
// A fatal failure is yielded once as a non-nil error and ends the sequence. The underlying
// file is closed when the sequence ends, including when the consumer stops early.
// Iterating a second time yields ErrSequenceConsumed.
func (s *RecordStream) Records(ctx context.Context) iter.Seq2[models.LogRecord, error] {
	return func(yield func(models.LogRecord, error) bool) {
		if !s.consumed.CompareAndSwap(false, true) {
			yield(models.LogRecord{}, ErrSequenceConsumed)
			return
		}

		logger := loggers.Ctx(ctx)

		rc, err := s.open()
		if err != nil {
			yield(models.LogRecord{}, fmt.Errorf("%w: %w", ErrOpenFailed, err))
			return
		}
		defer rc.Close()

		scanner := bufio.NewScanner(rc)
		scanner.Buffer(make([]byte, 0, initialLineBytes), maxLineBytes)

		for scanner.Scan() {
			if err := ctx.Err(); err != nil {
				yield(models.LogRecord{}, err)
				return
			}

			lineNumber := s.lines.Add(1)
			line := scanner.Text()

			record, ok := ParseLine(line)
			if !ok {
				s.bad.Add(1)
				metricLinesTotal.WithLabelValues(resultMalformed).Inc()
				logger.Warn().
					Int64(loggers.FieldLineNumber, lineNumber).
					Str(loggers.FieldLine, line).
					Msg("malformed log line skipped")
				continue
			}

			metricLinesTotal.WithLabelValues(resultParsed).Inc()
			if !yield(record, nil) {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			yield(models.LogRecord{}, fmt.Errorf("%w: %w", ErrReadFailed, err))
		}
	}
}

// openLog opens the file, wrapping it in a gzip reader when the descriptor says so.
func openLog(descriptor models.LogDescriptor) (io.ReadCloser, error) {
	file, err := os.Open(descriptor.FullPath)
	if err != nil {
		return nil, err
	}
	if !descriptor.IsCompressed {
		return file, nil
	}

	gz, err := gzip.NewReader(file)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("invalid gzip stream %q: %w", descriptor.FileName, err)
	}
	return &gzipFile{Reader: gz, file: file}, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.file.Close())
}
