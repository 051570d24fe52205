// Package diag defines the diagnostic marker data model and the pure
// filtering, sorting, grouping, and formatting utilities used to turn a
// host editor's marker snapshot into per-line work items.
//
// Markers are owned and produced entirely by the host. Nothing in this
// package mutates or persists them; every operation works on copies and
// tolerates missing fields on a best-effort basis.
package diag
