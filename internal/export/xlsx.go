package export

import (
	"bytes"
	"fmt"

	"github.com/atstracker/ats-tracking/internal/store/model"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Job Applications"

type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (r *XLSXRenderer) SupportedFormat() Format {
	return FormatXLSX
}

func (r *XLSXRenderer) Render(apps model.JobApplicationList) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, err
	}

	if err := writeRow(f, 1, header); err != nil {
		return nil, err
	}
	for i, app := range apps {
		if err := writeRow(f, i+2, toRow(app)); err != nil {
			return nil, fmt.Errorf("failed to write row for application %d: %w", app.ID, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, cell, &values)
}
