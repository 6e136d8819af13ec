// Package influxdb stores Skylark's time-series metrics: per-camera
// detection events, camera status transitions, and API request
// observations.
//
// It wraps the official influxdb-client-go v2 library. Writes are
// non-blocking and batched according to configuration (batch_size,
// flush_interval); asynchronous write failures are surfaced through
// the SetOnError callback. All methods are safe for concurrent use.
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    // ErrDisabled means metrics are simply off
//	}
//	defer client.Close()
//
//	client.WriteDetectionMetric("cam-1a2b3c4d", 0.94, 2)
package influxdb
