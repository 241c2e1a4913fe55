// Package changelog reads and updates markdown changelogs.
//
// A changelog is a sequence of entries, most recent first. Each entry starts
// with a header line followed by a blank line and the release note:
//
//	# My Project 1.2.0 (2024-05-01)
//
//	Adds support for custom key bindings.
//
// Update prepends a new entry and never edits or removes existing ones.
// Parse splits a changelog back into entries for querying and display.
package changelog
