// Package pkglog configures structured logging for the application.
//
// It installs a JSON slog handler as the process default and carries a
// correlation ID through context so every log line of one request can be
// joined together.
package pkglog
