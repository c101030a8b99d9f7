// Package constants holds filesystem values shared across the application.
package constants
