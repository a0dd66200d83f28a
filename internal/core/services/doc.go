// Package services implements the driving port interfaces.
// Services contain the query logic and orchestrate calls to the driven
// ports (stores, embedder).
//
// Services are pure Go; all I/O happens behind the driven ports.
package services
