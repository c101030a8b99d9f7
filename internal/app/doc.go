// Package app wires the configuration, the archive client and the album service together.
// It is the boundary where errors become fatal log messages and a non-zero exit code.
package app
