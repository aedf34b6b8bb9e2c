// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jeranaias/denimhouse-admin/internal/model"
)

// =============================================================================
// CSV EXPORTER
// =============================================================================

// CSVExporter exports sales reports as CSV. Revenue columns carry both the
// raw amount (for spreadsheet math) and a formatted rupiah string.
type CSVExporter struct{}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export converts a report to CSV.
func (e *CSVExporter) Export(report *model.SalesReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report is nil")
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"date", "orders", "items_sold", "revenue", "revenue_formatted"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for _, row := range report.Rows {
		record := []string{
			row.Date,
			strconv.Itoa(row.OrderCount),
			strconv.Itoa(row.ItemsSold),
			strconv.FormatInt(row.Revenue, 10),
			FormatRupiah(row.Revenue),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write row %s: %w", row.Date, err)
		}
	}

	total := []string{
		"total",
		strconv.Itoa(report.TotalOrders),
		"",
		strconv.FormatInt(report.TotalRevenue, 10),
		FormatRupiah(report.TotalRevenue),
	}
	if err := writer.Write(total); err != nil {
		return nil, fmt.Errorf("write total row: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for CSV.
func (e *CSVExporter) FileExtension() string {
	return ".csv"
}

// MimeType returns the MIME type for CSV.
func (e *CSVExporter) MimeType() string {
	return "text/csv"
}
