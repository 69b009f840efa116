package renderers

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"log-analyzer/internal/models"
)

const (
	placeholderTable = "$table_json"
	placeholderDate  = "$date"

	// AssetTableSort is the script report pages load from their own directory.
	AssetTableSort = "table_sort.js"
)

var (
	ErrTemplateUnreadable = errors.New("report template unreadable")
	ErrInvalidTemplate    = errors.New("report template has no " + placeholderTable + " placeholder")
)

//go:embed templates/report.html templates/table_sort.js
var templates embed.FS

// Asset is a static file published next to the rendered reports.
type Asset struct {
	Name    string
	Content []byte
}

//go:generate mockgen -source=report_renderer.go -destination=./mocks/report_renderer_mock.go -package=mocks
type ReportRenderer interface {
	// Render substitutes the table rows and the report date into the template.
	Render(table models.ReportTable) ([]byte, error)
	// Assets lists the static files the rendered page refers to.
	Assets() []Asset
}

type htmlRenderer struct {
	template string
	assets   []Asset
}

// NewHTMLRenderer loads the template at templatePath, or the embedded one when the path is empty.
func NewHTMLRenderer(templatePath string) (ReportRenderer, error) {
	var (
		raw []byte
		err error
	)
	if templatePath == "" {
		raw, err = templates.ReadFile("templates/report.html")
	} else {
		raw, err = os.ReadFile(templatePath)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrTemplateUnreadable, templatePath, err)
	}
	if !strings.Contains(string(raw), placeholderTable) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTemplate, templatePath)
	}

	script, err := templates.ReadFile("templates/" + AssetTableSort)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateUnreadable, err)
	}

	return &htmlRenderer{
		template: string(raw),
		assets:   []Asset{{Name: AssetTableSort, Content: script}},
	}, nil
}

func (r *htmlRenderer) Render(table models.ReportTable) ([]byte, error) {
	rows := table.Rows
	if rows == nil {
		rows = []models.ReportRow{}
	}

	// json.Marshal escapes <, > and & so the rows cannot close the surrounding script element.
	tableJSON, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report rows: %w", err)
	}

	replacer := strings.NewReplacer(
		placeholderTable, string(tableJSON),
		placeholderDate, table.Date.Dotted(),
	)
	return []byte(replacer.Replace(r.template)), nil
}

func (r *htmlRenderer) Assets() []Asset {
	return r.assets
}
