// Package pkgrouter dispatches inbound requests through an explicit route
// table and renders the JSON response envelope.
//
// Routes are evaluated in registration order and the first Pattern that
// matches wins. The same table serves a transport-neutral Request (serverless
// invocation, CLI) through Dispatch and plain net/http through ServeHTTP, the
// latter wrapped in the shared middleware (recovery, correlation ID,
// request logging). Operational endpoints such as /health live on httprouter
// in front of the table.
package pkgrouter
