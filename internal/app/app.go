package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"log-analyzer/internal/aggregators"
	"log-analyzer/internal/analyzers"
	internalhttp "log-analyzer/internal/http"
	"log-analyzer/internal/locators"
	"log-analyzer/internal/parsers"
	"log-analyzer/internal/renderers"
	"log-analyzer/internal/reports"
	"log-analyzer/internal/shared/configs"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/stores"
)

const appName = "log-analyzer"

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	logOutput io.Closer

	analysisService analyzers.AnalysisService
	server          *http.Server
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	out, closer, err := openLogOutput(config.Log.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	appLogger, err := loggers.New(config.Log.Level, out)
	if err != nil {
		closeQuietly(closer)
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger = appLogger.With().
		Str(loggers.FieldApp, appName).
		Logger()

	// Initialize report store
	fileStorage, err := filestorages.NewFileStorage(config.ReportDir)
	if err != nil {
		closeQuietly(closer)
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	reportStore := stores.NewReportStore(fileStorage)

	renderer, err := renderers.NewHTMLRenderer(config.Report.Template)
	if err != nil {
		closeQuietly(closer)
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	// Initialize analysis pipeline
	analysisService := analyzers.NewAnalysisService(
		locators.NewLogLocator(config.LogPrefix),
		parsers.NewRecordParser(),
		aggregators.NewStatsAggregator(),
		reports.NewRankedTableBuilder(),
		renderer,
		reportStore,
	)

	// Initialize report server
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(reportStore, httpLogger)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:          config,
		appLogger:       appLogger,
		logOutput:       closer,
		analysisService: analysisService,
		server:          server,
	}, nil
}

// Analyze runs one analysis of the configured log directory. A failed run returns a
// *svcerrors.ServiceError. The metrics textfile, when configured, is written either way.
func (app *App) Analyze(ctx context.Context) (*analyzers.AnalyzeResult, error) {
	ctx = app.appLogger.WithContext(ctx)

	result, svcErr := app.analysisService.Analyze(ctx, analyzers.AnalyzeRequest{
		LogDir:         app.config.LogDir,
		ReportSize:     app.config.ReportSize,
		ErrorThreshold: app.config.Parser.ErrorThreshold,
	})

	if path := app.config.Metrics.Textfile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			app.appLogger.Warn().Err(err).Msg("metrics textfile not written")
		}
	}

	if svcErr != nil {
		return nil, svcErr
	}
	return result, nil
}

// Handler returns the report server's router.
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

// Start serves stored reports in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting report server on port %d (log_level=%s, report_dir=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.ReportDir)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the report server.
func (app *App) Shutdown(ctx context.Context) error {
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")
	return nil
}

// Close releases the log file, if one was opened.
func (app *App) Close() error {
	if app.logOutput == nil {
		return nil
	}
	return app.logOutput.Close()
}

// openLogOutput returns stdout for an empty path, otherwise the file opened for appending.
func openLogOutput(path string) (io.Writer, io.Closer, error) {
	if path == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
