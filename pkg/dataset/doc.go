// Package dataset defines the typed entity model and the normalizer that
// turns raw tabular records into it.
//
// # Overview
//
// Upstream collaborators (see [github.com/matzehuels/qualmap/pkg/io]) decode a
// workbook document into a [Workbook]: named tables of loosely typed rows.
// [Normalize] validates the workbook and reshapes it into a [Dataset]:
//
//   - Nodes table → []Entity (Name, X, Y, Size, Group)
//   - Links table → []Relation (Source, Target, Strength, Type, Label)
//   - Settings table (optional) → AxisSettings
//
// # Errors
//
// A missing Nodes or Links table, or a missing required column, is a
// structural error: Normalize fails with code MISSING_FIELD and lists every
// missing field. Invalid values (a non-numeric coordinate, a non-positive
// size, an unknown relation type, a duplicate name) fail with INVALID_INPUT,
// again listing every problem. A missing Settings table is not an error.
//
// Relations whose endpoints do not name an entity are kept: they are valid
// input and are dropped later by the link router.
//
// # Groups
//
// The Group column is either a plain name or a bracketed JSON list of names
// (`["Government","Fishers"]`). [ParseGroups] resolves it once into a
// non-empty ordered list; duplicate entries are removed keeping the first
// occurrence. Nothing downstream branches on the original representation.
package dataset
