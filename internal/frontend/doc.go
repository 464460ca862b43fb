// Package frontend builds the configuration record consumed by the browser
// client: service endpoints and simulation speed parameters, resolved from the
// process environment on every call.
package frontend
