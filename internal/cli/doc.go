// Package cli is the skeletongen command tree. It parses flags, loads .env
// files, builds the App and maps failures to process exit codes through
// ExitError.
package cli
