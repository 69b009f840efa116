package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/stores"

	"github.com/go-chi/chi/v5"
)

const (
	paramDate  = "date"
	paramAsset = "asset"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// ReportLink points at the two renditions of one stored report.
type ReportLink struct {
	Date  models.LogDate `json:"date"`
	HTML  string         `json:"html"`
	Table string         `json:"table"`
}

type listReportsHandler struct {
	reportStore stores.ReportStore
}

func NewListReportsHandler(reportStore stores.ReportStore) AppHttpHandler {
	return &listReportsHandler{reportStore: reportStore}
}

// Handle processes GET /reports requests.
func (h *listReportsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	dates, err := h.reportStore.List(r.Context())
	if err != nil {
		return errInternalReportStoreFailed(err)
	}

	links := make([]ReportLink, 0, len(dates))
	for _, date := range dates {
		links = append(links, ReportLink{
			Date:  date,
			HTML:  "/reports/" + date.Compact(),
			Table: "/reports/" + date.Compact() + "/table",
		})
	}
	return writeJSON(w, http.StatusOK, links)
}

type reportPageHandler struct {
	reportStore stores.ReportStore
}

func NewReportPageHandler(reportStore stores.ReportStore) AppHttpHandler {
	return &reportPageHandler{reportStore: reportStore}
}

// Handle processes GET /reports/{date} requests.
func (h *reportPageHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	date, err := reportDate(r)
	if err != nil {
		return err
	}

	page, err := h.reportStore.GetHTML(r.Context(), date)
	if err != nil {
		if errors.Is(err, stores.ErrReportNotFound) {
			return errReportNotFound("report "+date.Dotted(), err)
		}
		return errInternalReportStoreFailed(err)
	}
	defer page.Close()

	return copyBody(w, r, contentTypeHTML, page)
}

type reportTableHandler struct {
	reportStore stores.ReportStore
}

func NewReportTableHandler(reportStore stores.ReportStore) AppHttpHandler {
	return &reportTableHandler{reportStore: reportStore}
}

// Handle processes GET /reports/{date}/table requests.
func (h *reportTableHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	date, err := reportDate(r)
	if err != nil {
		return err
	}

	table, err := h.reportStore.GetTable(r.Context(), date)
	if err != nil {
		if errors.Is(err, stores.ErrReportNotFound) {
			return errReportNotFound("report "+date.Dotted(), err)
		}
		return errInternalReportStoreFailed(err)
	}
	return writeJSON(w, http.StatusOK, table)
}

type assetHandler struct {
	reportStore stores.ReportStore
}

func NewAssetHandler(reportStore stores.ReportStore) AppHttpHandler {
	return &assetHandler{reportStore: reportStore}
}

// Handle processes GET /reports/{asset}.js requests issued by report pages.
func (h *assetHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	name := chi.URLParam(r, paramAsset)

	asset, err := h.reportStore.GetAsset(r.Context(), name)
	if err != nil {
		if errors.Is(err, stores.ErrAssetNotFound) || errors.Is(err, stores.ErrInvalidAssetName) {
			return errReportNotFound("asset "+name, err)
		}
		return errInternalReportStoreFailed(err)
	}
	defer asset.Close()

	return copyBody(w, r, contentTypeJavaScript, asset)
}

func reportDate(r *http.Request) (models.LogDate, error) {
	raw := chi.URLParam(r, paramDate)
	date, err := models.ParseLogDate(raw)
	if err != nil {
		return models.LogDate{}, errInvalidReportDate(raw, err)
	}
	return date, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// copyBody streams body to the client. Once the status line is sent a failure can only be logged.
func copyBody(w http.ResponseWriter, r *http.Request, contentType string, body io.Reader) error {
	w.Header().Set(headerContentType, contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		loggers.Ctx(r.Context()).Warn().Err(err).Msg("response body copy interrupted")
	}
	return nil
}
