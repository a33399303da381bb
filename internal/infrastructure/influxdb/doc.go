// Package influxdb provides optional telemetry for the mock device.
//
// When enabled, numeric variable updates and simulated display refreshes are
// written to InfluxDB as time-series points. Writes are batched and
// asynchronous; a failed write never blocks or fails the operation that
// produced it. The rest of the system treats this package as fire-and-forget:
// if InfluxDB is unreachable the mock keeps running and logs the write
// errors through the error callback.
//
// The package is disabled by default and activated via configuration.
package influxdb
