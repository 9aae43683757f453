package config

import "time"

// ServeConfig holds the schedule and query API of the serve command.
type ServeConfig struct {
	IntervalSeconds int `json:"interval_seconds"`
	// APIAddr enables the run history API when set.
	APIAddr  string `json:"api_addr"`
	APIToken string `json:"api_token"`
}

// Interval returns the delay between two rounds of runs.
func (c ServeConfig) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return 300 * time.Second
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}
