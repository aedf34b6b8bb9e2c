// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes sales reports to files for use outside the console.
//
// Two formats are supported:
//   - CSV: spreadsheet-friendly, with rupiah amounts formatted for the
//     Indonesian locale
//   - JSON: a faithful dump of the report structure for re-import or
//     further processing
//
// Exported files are named after the report's date range so repeated
// exports of different ranges never collide.
package export
