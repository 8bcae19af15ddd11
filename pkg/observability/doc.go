/*
Package observability turns engine lifecycle events into Prometheus metrics
and structured log records.

Both are plain domain.LifecycleHooks, so they compose with Merge and plug into
turing.WithLifecycleHooks or session.WithEngineOptions.
*/
package observability
