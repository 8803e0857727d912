// Package storage manages the bulk downloader's output directory.
//
// The Manager writes media files atomically (temp file + rename), keeps an
// in-memory set of already-downloaded filenames for duplicate skipping, and
// seeds that set from files present on disk at startup so interrupted runs
// resume cleanly.
package storage
