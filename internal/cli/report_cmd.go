// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// report_cmd.go - sales report fetch and export.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/jeranaias/denimhouse-admin/internal/export"
)

// =============================================================================
// REPORT
// =============================================================================

// HandleReport fetches a sales report and writes it out. The default range
// is the current month; --stdout prints instead of writing a file.
func HandleReport(deps Deps, args Args) error {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now

	if v := args.Options["from"]; v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return &UsageError{Message: "invalid --from date, expected YYYY-MM-DD: " + v}
		}
		from = parsed
	}
	if v := args.Options["to"]; v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return &UsageError{Message: "invalid --to date, expected YYYY-MM-DD: " + v}
		}
		to = parsed
	}
	if to.Before(from) {
		return &UsageError{Message: "--to is before --from"}
	}

	format := deps.Config.Export.Format
	if v := args.Options["format"]; v != "" {
		format = v
	}
	outputDir := deps.Config.Export.Dir
	if v := args.Options["output"]; v != "" {
		outputDir = v
	}

	exporter, err := export.ForFormat(format)
	if err != nil {
		return &UsageError{Message: err.Error()}
	}

	ctx, cancel := deps.callCtx()
	defer cancel()
	report, err := deps.Client.SalesReport(ctx, from, to)
	if err != nil {
		return err
	}

	if args.Options["stdout"] == "true" {
		content, err := exporter.Export(report)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(content)
		return err
	}

	path, err := export.ExportToFile(report, exporter, &export.Options{OutputDir: outputDir})
	if err != nil {
		return err
	}
	if !args.Quiet {
		fmt.Printf("Laporan %s s.d. %s disimpan: %s\n", report.From, report.To, path)
		fmt.Printf("  Total pesanan   : %d\n", report.TotalOrders)
		fmt.Printf("  Total pendapatan: %s\n", export.FormatRupiah(report.TotalRevenue))
	}
	return nil
}
