package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/atstracker/ats-tracking/internal/store/model"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var Formats = []string{string(FormatCSV), string(FormatXLSX)}

type Renderer interface {
	Render(apps model.JobApplicationList) ([]byte, error)
	SupportedFormat() Format
}

// NewRenderer returns the renderer for format.
func NewRenderer(format Format) (Renderer, error) {
	switch format {
	case FormatCSV:
		return NewCSVRenderer(), nil
	case FormatXLSX:
		return NewXLSXRenderer(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

var header = []string{
	"ID",
	"Source",
	"Company",
	"Job Title",
	"Application Date",
	"Time Investment",
	"Human Response",
	"Human Response Date",
	"Application Website",
	"Notes",
}

func toRow(app model.JobApplication) []string {
	return []string{
		strconv.Itoa(app.ID),
		app.Source,
		app.Company,
		app.JobTitle,
		app.ApplicationDate.Format(model.DateLayout),
		formatDuration(app.TimeInvestment),
		app.HumanResponse.String(),
		formatDate(app.HumanResponseDate),
		deref(app.ApplicationWebsite),
		deref(app.Notes),
	}
}

// formatDuration renders d as M:SS, or H:MM:SS from one hour on.
func formatDuration(d *time.Duration) string {
	if d == nil {
		return ""
	}
	total := int64(*d / time.Second)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(model.DateLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
