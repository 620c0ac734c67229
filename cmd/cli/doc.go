// Package cli constructs the reposync command-line interface, wiring the Cobra
// command hierarchy, the layered configuration loader, and structured logging.
// Every repository command shares one dependency graph assembled from the
// loaded configuration.
package cli
