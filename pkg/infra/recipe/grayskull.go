package recipe

import (
	"context"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/roboto/pkg/domain/interfaces"
	"github.com/m-mizutani/roboto/pkg/domain/model"
	"github.com/m-mizutani/roboto/pkg/recipe"
	"github.com/m-mizutani/roboto/pkg/utils/tempdir"
)

type generator struct {
	grayskullPath string
	strict        bool
	timeout       time.Duration
}

// NewGenerator creates a RecipeGenerator that shells out to grayskull.
// strict enables strict conda-forge channel resolution.
func NewGenerator(grayskullPath string, strict bool, timeout time.Duration) interfaces.RecipeGenerator {
	return &generator{grayskullPath: grayskullPath, strict: strict, timeout: timeout}
}

// FromLocalArchive regenerates a recipe from a downloaded source archive
// and loads its requirements structure
func (g *generator) FromLocalArchive(ctx context.Context, archivePath string) (*model.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var generated *model.Recipe
	err := tempdir.With(ctx, "roboto-grayskull-*", func(outDir string) error {
		args := []string{"pypi", archivePath, "--from-local-sdist", "-o", outDir}
		if g.strict {
			args = append(args, "--strict-conda-forge")
		}

		cmd := exec.CommandContext(ctx, g.grayskullPath, args...)
		out, err := cmd.CombinedOutput()
		if err != nil {
			return goerr.Wrap(err, "grayskull failed",
				goerr.V("archive", archivePath),
				goerr.V("output", strings.TrimSpace(string(out))),
			)
		}

		recipePath, err := findGeneratedRecipe(outDir)
		if err != nil {
			return err
		}

		generated, err = recipe.ParseFile(recipePath)
		return err
	})
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Debug("Generated recipe from archive",
		"archive", archivePath,
		"package", generated.PackageName,
	)
	return generated, nil
}

// findGeneratedRecipe locates the meta.yaml grayskull wrote under outDir
func findGeneratedRecipe(outDir string) (string, error) {
	var found string
	err := filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == "meta.yaml" {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to scan grayskull output", goerr.V("dir", outDir))
	}
	if found == "" {
		return "", goerr.New("grayskull produced no meta.yaml", goerr.V("dir", outDir))
	}
	return found, nil
}
