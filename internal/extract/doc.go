// Package extract implements the extraction engine that recovers a
// category → subcategory → row hierarchy from loosely structured PDF
// page content.
//
// # Overview
//
// The engine consumes positioned text tokens per page (via TokenSource),
// assembles them into logical lines, classifies each line by typography
// and layout, and feeds the classified stream through a state machine
// that builds the hierarchy while carrying open context across page
// boundaries. Content it cannot place lands in an append-only warning
// list — a row is never dropped silently.
//
// # Key Concepts
//
//   - Lines and cells: tokens sharing a baseline are merged left to
//     right; gaps at column scale split a line into cells.
//
//   - Roles: every line gets exactly one role from a closed enumeration
//     (category header, subcategory header, column header, data row,
//     TOC entry, ambiguous header, noise).
//
//   - Column grids: each open subcategory carries the column anchors its
//     rows are matched against; misaligned rows become warnings instead
//     of corrupt rows.
//
//   - Front matter: TOC entries are only collected before the first
//     category header (bounded by a page window); the transition to body
//     mode is permanent.
//
// # Architecture
//
//   - types.go: tokens, lines, roles, Config
//   - lines.go: normalization and line/cell assembly
//   - stats.go: document-level typography statistics
//   - classify.go: role assignment
//   - grid.go: column grid detection and row mapping
//   - hierarchy.go: the open-state machine building the tree
//   - toc.go: table-of-contents collection
//   - extract.go: the per-document coordinator
//
// Processing one document is strictly sequential — the hierarchy state
// spans pages — while separate documents are safe to extract in
// parallel, one Extractor each.
package extract
