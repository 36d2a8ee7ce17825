// Package config manages batchdl settings.
//
// # Settings
//
// Settings is an immutable record describing one batch run: where to write
// files, how to extract URLs and names from input entries, the filename
// pattern, the size ceiling and the concurrency bound.
//
// # Persistence
//
// Settings round-trip through a JSON file; a missing file loads as defaults:
//
//	settings, err := config.Load(path)
//	...
//	err = settings.Save(path)
//
// The default file location follows the XDG base directory spec, via
// config.DefaultConfigPath.
//
// # Validation
//
// Validate rejects setups no job could survive (concurrency < 1, negative
// size limit); such errors fail the whole run, unlike per-job failures.
package config
