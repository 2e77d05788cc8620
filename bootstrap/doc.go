// Package bootstrap assembles the application: configuration, logging,
// metrics, provider registries, and the orchestrator. Both binaries
// build themselves through it.
package bootstrap
