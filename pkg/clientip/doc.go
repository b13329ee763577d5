// Package clientip extracts and normalizes the visitor's IP address from
// an HTTP request, walking the usual proxy headers before falling back to
// the transport address.
//
// The result feeds the browser signature and the session canary, so the
// same request must always yield the same string: addresses are parsed and
// re-serialized in canonical form before being returned.
package clientip
