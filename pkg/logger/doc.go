// Package logger builds the structured slog loggers shared by the HTTP and
// Lambda entry points. Output is JSON in production and text elsewhere.
package logger
