// Package logger provides structured logging built on the Zap logging library.
// It keeps a process-wide logger with an adjustable level and lets callers
// carry a scoped logger inside a context, so components receive their logger
// together with the request they are serving instead of reaching for a global.
package logger
