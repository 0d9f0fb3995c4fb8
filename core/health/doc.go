// Package health provides HTTP handlers for service health probes.
//
// Handlers:
//   - Liveness: the process is running (no dependency checks)
//   - Readiness: every dependency check passes
//   - NoContent: 204 for high-frequency pings
//
// Usage:
//
//	r.Get("/health/live", health.Liveness[*app.Context])
//	r.Get("/health/ready", health.Readiness[*app.Context](log, files.Ping))
//
// Dependency checks have the func(context.Context) error signature and run
// concurrently; the first failure cancels the others.
package health
