// Package app wires configuration, logging, project files and storage
// around the generator. It is the single entry point used by the CLI, the
// HTTP server and the live preview link, decoupled from any of them.
package app
