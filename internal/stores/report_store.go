package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/filestorages"
)

const (
	reportPrefix  = "report-"
	extensionHTML = ".html"
	extensionJSON = ".json"
)

var (
	ErrReportAlreadyExists = errors.New("report already exists")
	ErrReportNotFound      = errors.New("report not found")
	ErrAssetNotFound       = errors.New("asset not found")
	ErrInvalidAssetName    = errors.New("invalid asset name")
)

// ReportStore keeps one report per log date in a flat directory:
//
//	report-2017.06.30.html   rendered page
//	report-2017.06.30.json   ReportTable behind the page
//	table_sort.js            assets the pages load by relative path
//
// The HTML page marks a report as complete. The table is written first and may be
// replaced by a later attempt until the page exists; the page itself is create-only,
// mirroring a conditional PUT on an object store.
//
//go:generate mockgen -source=report_store.go -destination=./mocks/report_store_mock.go -package=mocks
type ReportStore interface {
	Exists(ctx context.Context, date models.LogDate) (bool, error)
	Put(ctx context.Context, table *models.ReportTable, html []byte) error
	PutAsset(ctx context.Context, name string, content []byte) error
	// List returns the dates of complete reports, newest first.
	List(ctx context.Context) ([]models.LogDate, error)
	GetHTML(ctx context.Context, date models.LogDate) (io.ReadCloser, error)
	GetTable(ctx context.Context, date models.LogDate) (*models.ReportTable, error)
	GetAsset(ctx context.Context, name string) (io.ReadCloser, error)
}

type reportStore struct {
	fileStorage filestorages.FileStorage
}

func NewReportStore(fileStorage filestorages.FileStorage) ReportStore {
	return &reportStore{fileStorage: fileStorage}
}

// HTMLKey returns the file key of the rendered page for date, e.g. report-2017.06.30.html.
func HTMLKey(date models.LogDate) string {
	return reportPrefix + date.Dotted() + extensionHTML
}

// TableKey returns the file key of the table for date, e.g. report-2017.06.30.json.
func TableKey(date models.LogDate) string {
	return reportPrefix + date.Dotted() + extensionJSON
}

func (s *reportStore) Exists(ctx context.Context, date models.LogDate) (bool, error) {
	exists, err := s.fileStorage.Exists(ctx, HTMLKey(date))
	if err != nil {
		return false, fmt.Errorf("failed to check report %s: %w", date, err)
	}
	return exists, nil
}

func (s *reportStore) Put(ctx context.Context, table *models.ReportTable, html []byte) error {
	jsonData, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal report table: %w", err)
	}

	_, err = s.fileStorage.Put(ctx, TableKey(table.Date), bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put report table: %w", err)
	}

	_, err = s.fileStorage.Put(ctx, HTMLKey(table.Date), bytes.NewReader(html), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrReportAlreadyExists
		}
		return fmt.Errorf("failed to put report page: %w", err)
	}
	return nil
}

func (s *reportStore) PutAsset(ctx context.Context, name string, content []byte) error {
	if err := validateAssetName(name); err != nil {
		return err
	}

	_, err := s.fileStorage.Put(ctx, name, bytes.NewReader(content), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put asset %q: %w", name, err)
	}
	return nil
}

func (s *reportStore) List(ctx context.Context) ([]models.LogDate, error) {
	keys, err := s.fileStorage.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	dates := make([]models.LogDate, 0, len(keys))
	for _, key := range keys {
		name, ok := strings.CutPrefix(key, reportPrefix)
		if !ok {
			continue
		}
		name, ok = strings.CutSuffix(name, extensionHTML)
		if !ok {
			continue
		}

		var date models.LogDate
		if err := date.UnmarshalText([]byte(name)); err != nil {
			continue
		}
		dates = append(dates, date)
	}

	slices.SortFunc(dates, func(a, b models.LogDate) int {
		return b.Time().Compare(a.Time())
	})
	return dates, nil
}

func (s *reportStore) GetHTML(ctx context.Context, date models.LogDate) (io.ReadCloser, error) {
	rc, err := s.fileStorage.Get(ctx, HTMLKey(date))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report page: %w", err)
	}
	return rc, nil
}

func (s *reportStore) GetTable(ctx context.Context, date models.LogDate) (*models.ReportTable, error) {
	readCloser, err := s.fileStorage.Get(ctx, TableKey(date))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report table: %w", err)
	}

	defer readCloser.Close()
	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read report table: %w", err)
	}
	var table models.ReportTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report table: %w", err)
	}
	return &table, nil
}

func (s *reportStore) GetAsset(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := validateAssetName(name); err != nil {
		return nil, err
	}

	rc, err := s.fileStorage.Get(ctx, name)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset %q: %w", name, err)
	}
	return rc, nil
}

// validateAssetName accepts plain file names that cannot be mistaken for a report.
func validateAssetName(name string) error {
	if name == "" || path.Base(name) != name || strings.ContainsRune(name, '\\') ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, reportPrefix) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
