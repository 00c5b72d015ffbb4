package model

// Issue is the subset of a GitHub issue needed to resolve its pull request
type Issue struct {
	URL         string            `json:"url"`
	PullRequest *IssuePullRequest `json:"pull_request"`
}

// IssuePullRequest links an issue to its pull request resource
type IssuePullRequest struct {
	URL string `json:"url"`
}

// PullRequest carries the head branch information needed for cloning
type PullRequest struct {
	URL  string `json:"url"`
	Head PRHead `json:"head"`
}

// PRHead is the head ref of a pull request
type PRHead struct {
	Ref  string `json:"ref"`
	Repo PRRepo `json:"repo"`
}

// PRRepo is the head repository of a pull request
type PRRepo struct {
	GitURL   string `json:"git_url"`
	CloneURL string `json:"clone_url"`
	FullName string `json:"full_name"`
}
