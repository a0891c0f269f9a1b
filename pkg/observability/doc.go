/*
Package observability provides tools for monitoring a running sceneflow installation.

It includes Prometheus collectors fed from lifecycle hooks and per-tick snapshots,
and audit hooks that log every scene and phase transition.
*/
package observability
