// Package config defines the format-agnostic generator configuration and the
// Loader interface that concrete formats implement.
//
// The Model is what the rest of the application consumes; the hcl package
// provides the file-backed implementation.
package config
