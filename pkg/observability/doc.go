/*
Package observability provides Prometheus instrumentation for the tracker.

Metrics are driven by the same synchronous hooks that adapters observe, so
anything the tracker reports is also counted here.
*/
package observability
