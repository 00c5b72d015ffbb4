package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Poller holds notification polling configuration
type Poller struct {
	Interval time.Duration
}

// Flags returns CLI flags for poller configuration
func (c *Poller) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "poll-interval",
			Usage:       "Interval between notification polling cycles",
			Value:       4 * time.Minute,
			Destination: &c.Interval,
			Sources:     cli.EnvVars("ROBOTO_POLL_INTERVAL"),
		},
	}
}
