package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrRecipeNotFound is returned when neither recipe/meta.yaml nor
	// recipe/meta.yml exists in the cloned working tree
	ErrRecipeNotFound = goerr.New("there is no recipe file in recipe folder (meta.yaml or meta.yml)")

	// ErrNotPullRequest is returned when the mentioned issue has no
	// associated pull request
	ErrNotPullRequest = goerr.New("issue is not associated with a pull request")
)
