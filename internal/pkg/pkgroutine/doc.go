// Package pkgroutine contains helpers for running goroutines safely.
//
// The Manager type limits concurrency, collects returned errors, and logs
// panics so that background work does not crash the process silently.
// Submit builds on it to fan out independent calls and settle every one of
// them, success or failure, without one outcome cancelling the others.
package pkgroutine
