package interfaces

import (
	"context"

	"github.com/m-mizutani/roboto/pkg/domain/model"
)

// RepoCloner clones a remote branch into a local directory
type RepoCloner interface {
	Clone(ctx context.Context, remoteURL, destDir, branch string) error
}

// RecipeRenderer resolves the upstream source archive URL of a recipe
// directory through the external renderer
type RecipeRenderer interface {
	SourceURL(ctx context.Context, recipeDir string) (string, error)
}

// ArchiveDownloader downloads a source archive to a local path
type ArchiveDownloader interface {
	Download(ctx context.Context, archiveURL, destPath string) error
}

// RecipeGenerator regenerates a recipe from a local source archive
type RecipeGenerator interface {
	FromLocalArchive(ctx context.Context, archivePath string) (*model.Recipe, error)
}
