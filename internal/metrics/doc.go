// Package metrics collects per-route request statistics for the worker.
//
// The worker emits an event when a request arrives and when its response has
// been written. Events travel over a buffered channel and are sent without
// blocking, so a slow collector never holds up a response. The collector
// goroutine aggregates:
//   - Request counts per route
//   - Status code distribution per route
//   - Response times with P50, P95 and P99 percentiles
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	collector.Emit(metrics.MetricEvent{
//		Type:       metrics.EventResponseCompleted,
//		Route:      "/random",
//		Duration:   150 * time.Microsecond,
//		StatusCode: 200,
//	})
//
//	snapshot := collector.Snapshot()
//
// Background task outcomes are not part of the pipeline.
package metrics
