package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Tools holds configuration of the external recipe tooling
type Tools struct {
	GitPath       string
	CondaPath     string
	GrayskullPath string
	Strict        bool
	ExecTimeout   time.Duration
}

// Flags returns CLI flags for external tool configuration
func (c *Tools) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "git-path",
			Usage:       "Path to the git binary",
			Value:       "git",
			Destination: &c.GitPath,
			Sources:     cli.EnvVars("ROBOTO_GIT_PATH"),
		},
		&cli.StringFlag{
			Name:        "conda-path",
			Usage:       "Path to the conda binary used for recipe rendering",
			Value:       "conda",
			Destination: &c.CondaPath,
			Sources:     cli.EnvVars("ROBOTO_CONDA_PATH"),
		},
		&cli.StringFlag{
			Name:        "grayskull-path",
			Usage:       "Path to the grayskull binary",
			Value:       "grayskull",
			Destination: &c.GrayskullPath,
			Sources:     cli.EnvVars("ROBOTO_GRAYSKULL_PATH"),
		},
		&cli.BoolFlag{
			Name:        "strict-conda-forge",
			Usage:       "Run grayskull in strict conda-forge mode",
			Value:       true,
			Destination: &c.Strict,
			Sources:     cli.EnvVars("ROBOTO_STRICT_CONDA_FORGE"),
		},
		&cli.DurationFlag{
			Name:        "exec-timeout",
			Usage:       "Timeout applied to each external tool invocation and download",
			Value:       10 * time.Minute,
			Destination: &c.ExecTimeout,
			Sources:     cli.EnvVars("ROBOTO_EXEC_TIMEOUT"),
		},
	}
}
