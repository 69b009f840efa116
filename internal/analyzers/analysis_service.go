package analyzers

import (
	"context"
	"errors"
	"time"

	"log-analyzer/internal/aggregators"
	"log-analyzer/internal/locators"
	"log-analyzer/internal/models"
	"log-analyzer/internal/parsers"
	"log-analyzer/internal/renderers"
	"log-analyzer/internal/reports"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/svcerrors"
	"log-analyzer/internal/shared/ulid"
	"log-analyzer/internal/stores"
)

const componentName = "analyzer"

// Status is the outcome of a successful analysis run.
type Status string

const (
	StatusNoLog           Status = "no_log"
	StatusAlreadyReported Status = "already_reported"
	StatusCreated         Status = "created"
)

// AnalyzeRequest describes one analysis run.
type AnalyzeRequest struct {
	LogDir     string
	ReportSize int
	// ErrorThreshold is the highest tolerated malformed/total line ratio. Zero disables the check.
	ErrorThreshold float64
}

// AnalyzeResult describes what a run did. Date and LogFile are empty for StatusNoLog.
type AnalyzeResult struct {
	RunID     string
	Status    Status
	Date      models.LogDate
	LogFile   string
	ReportKey string
	Stats     parsers.Stats
	Rows      int
}

//go:generate mockgen -source=analysis_service.go -destination=./mocks/analysis_service_mock.go -package=mocks
type AnalysisService interface {
	// Analyze turns the newest log of req.LogDir into a report, unless that report already exists.
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, *svcerrors.ServiceError)
}

type analysisService struct {
	locator    locators.LogLocator
	parser     parsers.RecordParser
	aggregator aggregators.StatsAggregator
	builder    reports.RankedTableBuilder
	renderer   renderers.ReportRenderer
	store      stores.ReportStore
}

func NewAnalysisService(
	locator locators.LogLocator,
	parser parsers.RecordParser,
	aggregator aggregators.StatsAggregator,
	builder reports.RankedTableBuilder,
	renderer renderers.ReportRenderer,
	store stores.ReportStore,
) AnalysisService {
	return &analysisService{
		locator:    locator,
		parser:     parser,
		aggregator: aggregator,
		builder:    builder,
		renderer:   renderer,
		store:      store,
	}
}

func (s *analysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, *svcerrors.ServiceError) {
	start := time.Now()
	runID := ulid.NewID()

	logger := loggers.Ctx(ctx).With().
		Str(loggers.FieldComponent, componentName).
		Str(loggers.FieldRunID, runID).
		Logger()
	ctx = logger.WithContext(ctx)

	result, svcErr := s.analyze(ctx, runID, req)

	status := ""
	errorCode := metrics.ValueNoError
	if svcErr != nil {
		errorCode = svcErr.Code
		logger.Error().Err(svcErr).Str(loggers.FieldErrorCode, svcErr.Code).Msg("analysis failed")
	} else {
		status = string(result.Status)
	}
	metricRunsTotal.WithLabelValues(status, errorCode).Inc()
	metricDurationSeconds.WithLabelValues(status).Observe(time.Since(start).Seconds())

	return result, svcErr
}

func (s *analysisService) analyze(ctx context.Context, runID string, req AnalyzeRequest) (*AnalyzeResult, *svcerrors.ServiceError) {
	logger := loggers.Ctx(ctx)

	descriptor, found, err := s.locator.Locate(ctx, req.LogDir)
	if err != nil {
		return nil, errInternalLocateFailed(err)
	}
	if !found {
		logger.Info().Str("log_dir", req.LogDir).Msg("no log file to analyze")
		return &AnalyzeResult{RunID: runID, Status: StatusNoLog}, nil
	}

	result := &AnalyzeResult{
		RunID:     runID,
		Date:      descriptor.Date,
		LogFile:   descriptor.FileName,
		ReportKey: stores.HTMLKey(descriptor.Date),
	}
	logger.Info().
		Str(loggers.FieldFile, descriptor.FileName).
		Str(loggers.FieldReportDate, descriptor.Date.Dotted()).
		Msg("started analyzing log")

	exists, err := s.store.Exists(ctx, descriptor.Date)
	if err != nil {
		return nil, errInternalStoreFailed(err)
	}
	if exists {
		logger.Info().Str(loggers.FieldReportDate, descriptor.Date.Dotted()).Msg("report already exists")
		result.Status = StatusAlreadyReported
		return result, nil
	}

	stream := s.parser.Parse(descriptor)
	agg, err := s.aggregator.Aggregate(ctx, stream.Records(ctx))
	if err != nil {
		return nil, errInternalReadFailed(err)
	}

	result.Stats = stream.Stats()
	ratio := result.Stats.MalformedRatio()
	logger.Info().
		Int64("lines", result.Stats.Lines).
		Int64("malformed", result.Stats.Malformed).
		Int("urls", agg.Len()).
		Msg("log parsed")
	if req.ErrorThreshold > 0 && ratio > req.ErrorThreshold {
		return nil, errErrorThresholdExceeded(ratio, req.ErrorThreshold)
	}

	table := &models.ReportTable{
		Date:                descriptor.Date,
		SourceFile:          descriptor.FileName,
		TotalCount:          agg.TotalCount(),
		TotalDurationSum:    agg.TotalDurationSum(),
		RequestsByUserAgent: agg.RequestsByUserAgent(),
		Rows:                s.builder.Build(agg, req.ReportSize),
	}
	result.Rows = len(table.Rows)

	html, err := s.renderer.Render(*table)
	if err != nil {
		return nil, errInternalRenderFailed(err)
	}

	for _, asset := range s.renderer.Assets() {
		if err := s.store.PutAsset(ctx, asset.Name, asset.Content); err != nil {
			return nil, errInternalStoreFailed(err)
		}
	}

	if err := s.store.Put(ctx, table, html); err != nil {
		if errors.Is(err, stores.ErrReportAlreadyExists) {
			logger.Info().Str(loggers.FieldReportDate, descriptor.Date.Dotted()).Msg("report created concurrently")
			result.Status = StatusAlreadyReported
			return result, nil
		}
		return nil, errInternalStoreFailed(err)
	}

	logger.Info().
		Str(loggers.FieldReportDate, descriptor.Date.Dotted()).
		Int("rows", result.Rows).
		Msg("report created")
	result.Status = StatusCreated
	return result, nil
}
