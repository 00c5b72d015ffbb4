// Package recipe wraps the external recipe tooling: conda render for
// resolving the upstream source URL, grayskull for regenerating a recipe
// from a source archive, and the archive download itself.
package recipe

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/roboto/pkg/domain/interfaces"
)

type renderer struct {
	condaPath string
	timeout   time.Duration
}

// NewRenderer creates a RecipeRenderer that shells out to conda render
func NewRenderer(condaPath string, timeout time.Duration) interfaces.RecipeRenderer {
	return &renderer{condaPath: condaPath, timeout: timeout}
}

// SourceURL renders the recipe directory and returns source.url of the
// rendered output
func (r *renderer) SourceURL(ctx context.Context, recipeDir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.condaPath, "render", recipeDir)
	out, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		return "", goerr.Wrap(err, "conda render failed",
			goerr.V("recipe_dir", recipeDir),
			goerr.V("stderr", stderr),
		)
	}

	url, err := SourceURLFromRendered(out)
	if err != nil {
		return "", goerr.Wrap(err, "no source url in rendered recipe", goerr.V("recipe_dir", recipeDir))
	}

	ctxlog.From(ctx).Debug("Rendered recipe", "recipe_dir", recipeDir, "source_url", url)
	return url, nil
}

// SourceURLFromRendered extracts source.url from rendered recipe YAML.
// The source block may be a mapping or a list of mappings, and url itself
// may be a list of mirrors; the first entry wins.
func SourceURLFromRendered(data []byte) (string, error) {
	var doc struct {
		Source any `yaml:"source"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", goerr.Wrap(err, "failed to parse rendered recipe")
	}

	url := digSourceURL(doc.Source)
	if url == "" {
		return "", goerr.New("rendered recipe has no source.url")
	}
	return strings.TrimSpace(url), nil
}

func digSourceURL(v any) string {
	switch src := v.(type) {
	case map[string]any:
		return urlString(src["url"])
	case []any:
		if len(src) > 0 {
			return digSourceURL(src[0])
		}
	}
	return ""
}

func urlString(v any) string {
	switch u := v.(type) {
	case string:
		return u
	case []any:
		if len(u) > 0 {
			return urlString(u[0])
		}
	}
	return ""
}
