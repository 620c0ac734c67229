// Package ui provides helpers for formatting human-readable console output.
//
// It renders git command lifecycle events for the console log format while
// structured telemetry continues to flow through the executor's zap logger.
package ui
