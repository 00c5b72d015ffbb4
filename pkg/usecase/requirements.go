package usecase

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/roboto/pkg/domain/interfaces"
	"github.com/m-mizutani/roboto/pkg/domain/model"
	"github.com/m-mizutani/roboto/pkg/domain/types"
	"github.com/m-mizutani/roboto/pkg/recipe"
	"github.com/m-mizutani/roboto/pkg/utils/tempdir"
)

// ShowRequirementsPattern builds the command grammar for the given bot
// name: "@<bot> show requirement(s)" with flexible internal whitespace.
func ShowRequirementsPattern(botName string) string {
	return `@` + regexp.QuoteMeta(botName) + `\s+show\s+requirements?`
}

type showRequirements struct {
	ghClient   interfaces.GitHubClient
	cloner     interfaces.RepoCloner
	renderer   interfaces.RecipeRenderer
	downloader interfaces.ArchiveDownloader
	generator  interfaces.RecipeGenerator
}

// NewShowRequirements creates the handler for the "show requirements"
// command: it diffs the pull request's recipe dependencies against a
// recipe regenerated from the upstream source archive.
func NewShowRequirements(
	ghClient interfaces.GitHubClient,
	cloner interfaces.RepoCloner,
	renderer interfaces.RecipeRenderer,
	downloader interfaces.ArchiveDownloader,
	generator interfaces.RecipeGenerator,
) interfaces.CommandHandler {
	return &showRequirements{
		ghClient:   ghClient,
		cloner:     cloner,
		renderer:   renderer,
		downloader: downloader,
		generator:  generator,
	}
}

// Handle resolves the mentioned issue to its pull request, clones the head
// branch, and posts the dependency comparison back to the thread.
func (uc *showRequirements) Handle(ctx context.Context, msg *model.Comment) error {
	logger := ctxlog.From(ctx)

	issue, err := uc.ghClient.GetIssue(ctx, msg.IssueURL)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch issue", goerr.V("issue_url", msg.IssueURL))
	}
	if issue.PullRequest == nil || issue.PullRequest.URL == "" {
		return goerr.Wrap(types.ErrNotPullRequest, "cannot show requirements", goerr.V("issue_url", msg.IssueURL))
	}

	pr, err := uc.ghClient.GetPullRequest(ctx, issue.PullRequest.URL)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch pull request", goerr.V("pr_url", issue.PullRequest.URL))
	}

	logger.Info("Processing show requirements command",
		"issue_url", msg.IssueURL,
		"head_repo", pr.Head.Repo.GitURL,
		"head_ref", pr.Head.Ref,
	)

	return tempdir.With(ctx, "roboto-clone-*", func(workDir string) error {
		return uc.compareAndReply(ctx, msg, pr, workDir)
	})
}

func (uc *showRequirements) compareAndReply(ctx context.Context, msg *model.Comment, pr *model.PullRequest, workDir string) error {
	if err := uc.cloner.Clone(ctx, pr.Head.Repo.GitURL, workDir, pr.Head.Ref); err != nil {
		return goerr.Wrap(err, "failed to clone head branch",
			goerr.V("repository", pr.Head.Repo.GitURL),
			goerr.V("branch", pr.Head.Ref),
		)
	}

	recipePath, err := recipe.Locate(workDir, pr.Head.Repo.GitURL)
	if err != nil {
		return err
	}

	current, err := recipe.ParseFile(recipePath)
	if err != nil {
		return err
	}

	recipeDir := filepath.Dir(recipePath)
	pkgURL, err := uc.renderer.SourceURL(ctx, recipeDir)
	if err != nil {
		return goerr.Wrap(err, "failed to render recipe", goerr.V("recipe_dir", recipeDir))
	}
	pkgFileName := archiveFileName(pkgURL)

	logger := ctxlog.From(ctx)
	logger.Info("Rendered recipe source",
		"package_url", pkgURL,
		"package_file", pkgFileName,
	)

	return tempdir.With(ctx, "roboto-sdist-*", func(sdistDir string) error {
		archivePath := filepath.Join(sdistDir, pkgFileName)
		if err := uc.downloader.Download(ctx, pkgURL, archivePath); err != nil {
			return goerr.Wrap(err, "failed to download source archive", goerr.V("url", pkgURL))
		}

		found, err := uc.generator.FromLocalArchive(ctx, archivePath)
		if err != nil {
			return goerr.Wrap(err, "failed to generate recipe from archive", goerr.V("archive", archivePath))
		}

		body := ComparisonMessage(current, found)
		if err := uc.ghClient.CreateComment(ctx, msg.IssueURL, body); err != nil {
			return goerr.Wrap(err, "failed to post comparison comment", goerr.V("issue_url", msg.IssueURL))
		}

		logger.Info("Posted requirements comparison", "issue_url", msg.IssueURL)
		return nil
	})
}

// archiveFileName is the final path segment of the source URL
func archiveFileName(pkgURL string) string {
	parts := strings.Split(strings.TrimSpace(pkgURL), "/")
	return parts[len(parts)-1]
}
