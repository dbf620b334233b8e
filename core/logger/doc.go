// Package logger provides structured logging built on zap.
//
// It supports JSON output for production and a colored console format
// for development. WithRayID enriches a logger with the per-request ray
// ID set by the rayid middleware, so every log line of a request can be
// correlated.
package logger
