// Package driving defines the query interfaces the CLI drives the core
// through. Each interface is implemented by a service in
// internal/core/services.
package driving
