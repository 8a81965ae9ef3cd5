// Package io reads workbook documents and writes render artifacts.
//
// # Workbooks
//
// A workbook is a document whose top level maps table names to tables. The
// normalizer looks for three of them: Nodes, Links and the optional
// Settings. Each table is a list of rows, each row a mapping from column
// name to cell value:
//
//	Nodes:
//	  - {Name: Port, X: 0, Y: 10, Size: 5, Group: Market}
//	  - {Name: Agency, X: 9, Y: 9, Size: 2, Group: '["Government","Fishers"]'}
//	Links:
//	  - {Source: Port, Target: Agency, Strength: 2, Type: dashed, Label: permits}
//	Settings:
//	  - {Key: XAxisLabel, Value: Supply chain}
//
// The Settings table may also be written as a plain mapping
// (`Settings: {XAxisLabel: Supply chain}`); it is turned into Key/Value rows
// sorted by key.
//
// Three encodings are accepted, chosen by file extension: JSON (.json),
// YAML (.yaml, .yml) and TOML (.toml, using arrays of tables such as
// `[[Nodes]]`). Numbers keep whatever representation the decoder produces;
// coercion happens in [dataset.Normalize].
//
// Use [ImportWorkbook] for a file path or [ReadWorkbook] for any
// [io.Reader]. Unreadable files fail with FILE_NOT_FOUND, undecodable or
// oddly shaped documents with INVALID_FORMAT.
//
// # Artifacts
//
// [ExportFile] writes rendered bytes to disk atomically, creating parent
// directories as needed.
//
// [dataset.Normalize]: github.com/matzehuels/qualmap/pkg/dataset.Normalize
package io
