// Package domain contains the core business entities and pure logic for the
// grans meetings index: documents, transcripts, panels, people, calendars,
// events, templates, recipes, and the text/date/search primitives that the
// query services are built from.
//
// Nothing in this package performs I/O. Timestamps are carried as the
// ISO-8601 strings the index stores; parsing happens at the edges.
package domain
