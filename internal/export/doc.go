// Package export writes ism records out of the dataset: as JSON (optionally
// zstd-compressed), as one markdown file per record, or as a SQLite database.
package export
