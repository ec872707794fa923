// Package pkguid generates the string identifiers used for request
// correlation.
package pkguid
