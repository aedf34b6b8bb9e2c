// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"

	"github.com/jeranaias/denimhouse-admin/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports sales reports to JSON format.
// NOTE: JSON exports are a faithful dump of the report structure so the file
// can be re-imported or fed to other tooling; amounts stay raw integers.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a report to JSON format.
func (e *JSONExporter) Export(report *model.SalesReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report is nil")
	}
	return json.MarshalIndent(report, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
