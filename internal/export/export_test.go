// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/denimhouse-admin/internal/model"
)

func sampleReport() *model.SalesReport {
	return &model.SalesReport{
		From: "2026-08-01",
		To:   "2026-08-07",
		Rows: []model.SalesReportRow{
			{Date: "2026-08-01", OrderCount: 4, ItemsSold: 7, Revenue: 2150000},
			{Date: "2026-08-02", OrderCount: 2, ItemsSold: 2, Revenue: 898000},
		},
		TotalRevenue: 3048000,
		TotalOrders:  6,
	}
}

func TestCSVExport(t *testing.T) {
	content, err := NewCSVExporter().Export(sampleReport())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(content))).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	// header + 2 rows + total
	if len(records) != 4 {
		t.Fatalf("record count = %d, want 4", len(records))
	}
	if records[1][0] != "2026-08-01" || records[1][3] != "2150000" {
		t.Errorf("first row = %v", records[1])
	}
	if records[3][0] != "total" || records[3][3] != "3048000" {
		t.Errorf("total row = %v", records[3])
	}
}

func TestJSONExportRoundTrip(t *testing.T) {
	report := sampleReport()
	content, err := NewJSONExporter().Export(report)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var decoded model.SalesReport
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.TotalRevenue != report.TotalRevenue || len(decoded.Rows) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp0"},
		{449000, "Rp449.000"},
		{2150000, "Rp2.150.000"},
	}
	for _, tt := range tests {
		if got := FormatRupiah(tt.amount); got != tt.want {
			t.Errorf("FormatRupiah(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	path, err := ExportToFile(sampleReport(), NewCSVExporter(), &Options{OutputDir: dir})
	if err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("path = %q, want under %q", path, dir)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "sales_2026-08-01_2026-08-07_") || !strings.HasSuffix(name, ".csv") {
		t.Errorf("filename = %q", name)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestForFormat(t *testing.T) {
	if _, err := ForFormat("csv"); err != nil {
		t.Errorf("csv: %v", err)
	}
	if _, err := ForFormat("JSON"); err != nil {
		t.Errorf("json: %v", err)
	}
	if _, err := ForFormat("xlsx"); err == nil {
		t.Error("xlsx should be rejected")
	}
}
