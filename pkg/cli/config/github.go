package config

import "github.com/urfave/cli/v3"

// GitHub holds GitHub API configuration
type GitHub struct {
	Token   string
	BaseURL string
	BotName string
}

// Flags returns CLI flags for GitHub configuration. The token is not
// required up front: an unauthenticated client fails at first use.
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("ROBOTO_GITHUB_TOKEN", "GH_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL",
			Value:       "https://api.github.com/",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("ROBOTO_GITHUB_API_URL"),
		},
		&cli.StringFlag{
			Name:        "bot-name",
			Usage:       "Mention name the bot answers to",
			Value:       "conda-grayskull",
			Destination: &c.BotName,
			Sources:     cli.EnvVars("ROBOTO_BOT_NAME"),
		},
	}
}
