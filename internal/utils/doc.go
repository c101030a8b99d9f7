// Package utils provides small helpers shared by the client, transport and service layers:
// content type checks for debug dumps, path existence checks and filename cleanup.
package utils
