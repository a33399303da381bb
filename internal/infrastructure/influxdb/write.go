package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteVariableMetric records a numeric variable value as a telemetry point.
//
// Only variables whose values parse as numbers are worth recording; the
// caller decides which writes to forward. The write is non-blocking; data
// is batched and sent asynchronously.
//
// Example:
//
//	client.WriteVariableMetric("temperature", 23.5, "rest")
func (c *Client) WriteVariableMetric(name string, value float64, source string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"epaper_variables",
		map[string]string{
			"variable": name,
			"source":   source,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteRefreshEvent records a simulated display refresh.
//
// Refresh cadence is the main thing e-paper dashboards track: panels have a
// bounded refresh budget and development tooling watches for runaway loops.
func (c *Client) WriteRefreshEvent(templateName string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"epaper_refresh",
		map[string]string{
			"template": templateName,
		},
		map[string]interface{}{
			"count": 1,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
