// Package server provides the daemon's operational HTTP surface: a
// Prometheus /metrics endpoint and /healthz//readyz probes. Readiness
// reflects the syncer's credential state, so a daemon suspended after an
// authentication failure shows up as not ready.
package server
