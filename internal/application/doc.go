// Package application provides application initialization and dependency wiring.
// It resolves the static directory, builds the configuration and static
// handlers, the router and the HTTP server, keeping the main package focused
// on CLI parsing and orchestration.
package application
