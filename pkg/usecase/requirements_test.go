package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/roboto/pkg/domain/model"
	"github.com/m-mizutani/roboto/pkg/usecase"
)

type clonerMock struct {
	cloneFunc func(ctx context.Context, remoteURL, destDir, branch string) error
	calls     int
}

func (m *clonerMock) Clone(ctx context.Context, remoteURL, destDir, branch string) error {
	m.calls++
	return m.cloneFunc(ctx, remoteURL, destDir, branch)
}

type rendererMock struct {
	sourceURL string
	err       error
	calls     int
}

func (m *rendererMock) SourceURL(ctx context.Context, recipeDir string) (string, error) {
	m.calls++
	return m.sourceURL, m.err
}

type downloaderMock struct {
	downloadedURL  string
	downloadedPath string
	calls          int
}

func (m *downloaderMock) Download(ctx context.Context, archiveURL, destPath string) error {
	m.calls++
	m.downloadedURL = archiveURL
	m.downloadedPath = destPath
	return nil
}

type generatorMock struct {
	recipe      *model.Recipe
	archivePath string
	calls       int
}

func (m *generatorMock) FromLocalArchive(ctx context.Context, archivePath string) (*model.Recipe, error) {
	m.calls++
	m.archivePath = archivePath
	return m.recipe, nil
}

// writeRecipe drops a recipe file into <dir>/recipe/<name>
func writeRecipe(t *testing.T, dir, name, content string) {
	t.Helper()
	recipeDir := filepath.Join(dir, "recipe")
	gt.NoError(t, os.MkdirAll(recipeDir, 0755))
	gt.NoError(t, os.WriteFile(filepath.Join(recipeDir, name), []byte(content), 0644))
}

func TestShowRequirements_PostsComparison(t *testing.T) {
	ctx := context.Background()

	const metaYAML = `package:
  name: demo

requirements:
  run:
    - numpy
`

	var postedBody string
	gh := &githubClientMock{
		getIssueFunc: func(ctx context.Context, issueURL string) (*model.Issue, error) {
			return &model.Issue{
				URL:         issueURL,
				PullRequest: &model.IssuePullRequest{URL: "https://api.github.test/repos/o/r/pulls/7"},
			}, nil
		},
		getPullRequestFunc: func(ctx context.Context, prURL string) (*model.PullRequest, error) {
			return &model.PullRequest{
				URL: prURL,
				Head: model.PRHead{
					Ref:  "update-demo",
					Repo: model.PRRepo{GitURL: "git://github.com/o/r.git"},
				},
			}, nil
		},
		createCommentFunc: func(ctx context.Context, issueURL, body string) error {
			postedBody = body
			return nil
		},
	}

	cloner := &clonerMock{
		cloneFunc: func(ctx context.Context, remoteURL, destDir, branch string) error {
			gt.Value(t, remoteURL).Equal("git://github.com/o/r.git")
			gt.Value(t, branch).Equal("update-demo")
			writeRecipe(t, destDir, "meta.yaml", metaYAML)
			return nil
		},
	}
	renderer := &rendererMock{sourceURL: "https://files.test/packages/demo-1.0.tar.gz"}
	downloader := &downloaderMock{}
	generator := &generatorMock{
		recipe: &model.Recipe{
			PackageName: "demo",
			Requirements: model.Requirements{
				model.SectionRun: {{Name: "numpy", Constraint: ">=1.20"}},
			},
		},
	}

	uc := usecase.NewShowRequirements(gh, cloner, renderer, downloader, generator)
	msg := &model.Comment{IssueURL: "https://api.github.test/repos/o/r/issues/7"}
	gt.NoError(t, uc.Handle(ctx, msg))

	// archive name is the final path segment of the rendered source URL
	gt.Value(t, downloader.downloadedURL).Equal("https://files.test/packages/demo-1.0.tar.gz")
	gt.Value(t, filepath.Base(downloader.downloadedPath)).Equal("demo-1.0.tar.gz")
	gt.Value(t, generator.archivePath).Equal(downloader.downloadedPath)

	gt.String(t, postedBody).Contains("================ **RUN** ================")
	gt.String(t, postedBody).Contains("| numpy | numpy >=1.20 | :heavy_exclamation_mark: |")
}

func TestShowRequirements_FallsBackToMetaYml(t *testing.T) {
	ctx := context.Background()

	var postedBody string
	gh := &githubClientMock{
		getIssueFunc: func(ctx context.Context, issueURL string) (*model.Issue, error) {
			return &model.Issue{PullRequest: &model.IssuePullRequest{URL: "pr-url"}}, nil
		},
		getPullRequestFunc: func(ctx context.Context, prURL string) (*model.PullRequest, error) {
			return &model.PullRequest{Head: model.PRHead{Ref: "b", Repo: model.PRRepo{GitURL: "git://x"}}}, nil
		},
		createCommentFunc: func(ctx context.Context, issueURL, body string) error {
			postedBody = body
			return nil
		},
	}
	cloner := &clonerMock{
		cloneFunc: func(ctx context.Context, remoteURL, destDir, branch string) error {
			writeRecipe(t, destDir, "meta.yml", "requirements:\n  run:\n    - numpy\n")
			return nil
		},
	}
	generator := &generatorMock{recipe: &model.Recipe{Requirements: model.Requirements{}}}

	uc := usecase.NewShowRequirements(gh, cloner, &rendererMock{sourceURL: "https://x/y.tar.gz"}, &downloaderMock{}, generator)
	gt.NoError(t, uc.Handle(ctx, &model.Comment{IssueURL: "issue-url"}))

	gt.String(t, postedBody).Contains("| numpy |  | :x: |")
}

func TestShowRequirements_MissingRecipeFile(t *testing.T) {
	ctx := context.Background()

	gh := &githubClientMock{
		getIssueFunc: func(ctx context.Context, issueURL string) (*model.Issue, error) {
			return &model.Issue{PullRequest: &model.IssuePullRequest{URL: "pr-url"}}, nil
		},
		getPullRequestFunc: func(ctx context.Context, prURL string) (*model.PullRequest, error) {
			return &model.PullRequest{Head: model.PRHead{Ref: "b", Repo: model.PRRepo{GitURL: "git://github.com/o/r.git"}}}, nil
		},
	}
	cloner := &clonerMock{
		cloneFunc: func(ctx context.Context, remoteURL, destDir, branch string) error {
			return nil // empty working tree, no recipe directory
		},
	}
	renderer := &rendererMock{}
	downloader := &downloaderMock{}
	generator := &generatorMock{}

	uc := usecase.NewShowRequirements(gh, cloner, renderer, downloader, generator)
	err := uc.Handle(ctx, &model.Comment{IssueURL: "issue-url"})

	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("git://github.com/o/r.git")

	// no further steps once the recipe file is missing
	gt.Number(t, renderer.calls).Equal(0)
	gt.Number(t, downloader.calls).Equal(0)
	gt.Number(t, generator.calls).Equal(0)
}

func TestShowRequirements_IssueWithoutPullRequest(t *testing.T) {
	ctx := context.Background()

	gh := &githubClientMock{
		getIssueFunc: func(ctx context.Context, issueURL string) (*model.Issue, error) {
			return &model.Issue{URL: issueURL}, nil
		},
	}
	cloner := &clonerMock{cloneFunc: func(ctx context.Context, remoteURL, destDir, branch string) error {
		return nil
	}}

	uc := usecase.NewShowRequirements(gh, cloner, &rendererMock{}, &downloaderMock{}, &generatorMock{})
	err := uc.Handle(ctx, &model.Comment{IssueURL: "issue-url"})

	gt.Error(t, err)
	gt.Number(t, cloner.calls).Equal(0)
}
