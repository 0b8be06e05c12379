package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/atstracker/ats-tracking/internal/store/model"
)

type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (r *CSVRenderer) SupportedFormat() Format {
	return FormatCSV
}

func (r *CSVRenderer) Render(apps model.JobApplicationList) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, app := range apps {
		if err := writer.Write(toRow(app)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row for application %d: %w", app.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return buf.Bytes(), nil
}
