// Package pkgerror defines the structured error type used across the
// application.
//
// Handlers return a *Error when the caller should see a specific status and
// message (bad input, a failed upstream). Anything else reaching the router is
// treated as an internal failure and only its generic message leaves the
// process.
package pkgerror
