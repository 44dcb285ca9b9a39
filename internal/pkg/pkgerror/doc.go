// Package pkgerror defines the structured error used across the application.
//
// Errors carry a user-facing message, a high-level type, and a stable code.
// The code is what the HTTP layer maps to a status and what callers use to
// distinguish validation failures (null input, invalid shape) from business
// rejections (access violation, exited session) and server-side I/O failures.
package pkgerror
