// Package hospreport lays out facilities-management records on printable
// A4 pages.
//
// A report is described as a Document: a title block, an ordered list of
// Content values (sections of label/value fields, wrapped notes, tables,
// photos) and a footer. Render walks that list once, threading an explicit
// Cursor through every primitive and drawing on a Canvas. PDFCanvas draws
// with go-pdf/fpdf; tests use a recording canvas so the layout arithmetic
// can be checked without parsing PDF output.
//
// Pagination is manual: a new page starts before any row or field whose top
// would sit at or below Geometry.BreakY. Table headers are not repeated on
// continuation pages unless WithRepeatHeader is given.
package hospreport
