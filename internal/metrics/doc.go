// Package metrics records run statistics. Recorder keeps Prometheus
// counters in a private registry and can export them over HTTP or as a
// node_exporter textfile; MemoryCollector reads runtime memory statistics
// for the --details report.
package metrics
