package recipe_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/roboto/pkg/domain/model"
	"github.com/m-mizutani/roboto/pkg/domain/types"
	"github.com/m-mizutani/roboto/pkg/recipe"
)

const sampleMeta = `{% set name = "demo" %}
{% set version = "1.2.3" %}

package:
  name: "{{ name }}"
  version: "{{ version }}"

source:
  url: https://pypi.io/packages/source/d/demo/demo-{{ version }}.tar.gz
  sha256: abc123

build:
  number: 0
  script: python -m pip install . -vv

requirements:
  build:
    - {{ compiler('c') }}
  host:
    - python >=3.8
    - pip
  run:
    # runtime deps
    - python >=3.8
    - numpy >=1.20
    - pywin32  # [win]

test:
  imports:
    - demo
`

func TestParse_RequirementsSections(t *testing.T) {
	r, err := recipe.Parse(strings.NewReader(sampleMeta))
	gt.NoError(t, err)

	gt.Value(t, r.PackageName).Equal("{{ name }}")

	gt.Value(t, r.Requirements.Has(model.SectionBuild)).Equal(true)
	gt.Value(t, r.Requirements.Has(model.SectionHost)).Equal(true)
	gt.Value(t, r.Requirements.Has(model.SectionRun)).Equal(true)

	gt.Value(t, r.Requirements[model.SectionBuild]).Equal([]model.Dependency{
		{Name: "{{ compiler('c') }}"},
	})
	gt.Value(t, r.Requirements[model.SectionHost]).Equal([]model.Dependency{
		{Name: "python", Constraint: ">=3.8"},
		{Name: "pip"},
	})
	gt.Value(t, r.Requirements[model.SectionRun]).Equal([]model.Dependency{
		{Name: "python", Constraint: ">=3.8"},
		{Name: "numpy", Constraint: ">=1.20"},
		{Name: "pywin32", Selector: "win"},
	})
}

func TestParse_BuildSectionOutsideRequirementsIgnored(t *testing.T) {
	// the top-level build block (script, number) is not a requirements section
	r, err := recipe.Parse(strings.NewReader(sampleMeta))
	gt.NoError(t, err)

	for _, dep := range r.Requirements[model.SectionBuild] {
		gt.Value(t, strings.Contains(dep.Name, "script")).Equal(false)
	}
}

func TestParse_NoRequirements(t *testing.T) {
	r, err := recipe.Parse(strings.NewReader("package:\n  name: demo\n"))
	gt.NoError(t, err)

	gt.Value(t, r.PackageName).Equal("demo")
	gt.Value(t, r.Requirements.Has(model.SectionRun)).Equal(false)
}

func TestParse_EmptySectionIsPresent(t *testing.T) {
	r, err := recipe.Parse(strings.NewReader("requirements:\n  host:\n  run:\n    - numpy\n"))
	gt.NoError(t, err)

	gt.Value(t, r.Requirements.Has(model.SectionHost)).Equal(true)
	gt.Number(t, len(r.Requirements[model.SectionHost])).Equal(0)
	gt.Number(t, len(r.Requirements[model.SectionRun])).Equal(1)
}

func TestParseDependency(t *testing.T) {
	tests := []struct {
		item string
		want model.Dependency
	}{
		{item: " numpy", want: model.Dependency{Name: "numpy"}},
		{item: " python >=3.8", want: model.Dependency{Name: "python", Constraint: ">=3.8"}},
		{item: " pywin32  # [win]", want: model.Dependency{Name: "pywin32", Selector: "win"}},
		{item: " numpy >=1.20  # [not osx]", want: model.Dependency{Name: "numpy", Constraint: ">=1.20", Selector: "not osx"}},
		{item: ` "quoted-pkg"`, want: model.Dependency{Name: "quoted-pkg"}},
		{item: " {{ compiler('cxx') }}", want: model.Dependency{Name: "{{ compiler('cxx') }}"}},
	}

	for _, tt := range tests {
		t.Run(tt.item, func(t *testing.T) {
			gt.Value(t, recipe.ParseDependency(tt.item)).Equal(tt.want)
		})
	}
}

func TestLocate(t *testing.T) {
	t.Run("meta.yaml preferred", func(t *testing.T) {
		dir := t.TempDir()
		recipeDir := filepath.Join(dir, "recipe")
		gt.NoError(t, os.MkdirAll(recipeDir, 0755))
		gt.NoError(t, os.WriteFile(filepath.Join(recipeDir, "meta.yaml"), []byte("a"), 0644))
		gt.NoError(t, os.WriteFile(filepath.Join(recipeDir, "meta.yml"), []byte("b"), 0644))

		p, err := recipe.Locate(dir, "git://example/repo.git")
		gt.NoError(t, err)
		gt.Value(t, filepath.Base(p)).Equal("meta.yaml")
	})

	t.Run("meta.yml fallback", func(t *testing.T) {
		dir := t.TempDir()
		recipeDir := filepath.Join(dir, "recipe")
		gt.NoError(t, os.MkdirAll(recipeDir, 0755))
		gt.NoError(t, os.WriteFile(filepath.Join(recipeDir, "meta.yml"), []byte("b"), 0644))

		p, err := recipe.Locate(dir, "git://example/repo.git")
		gt.NoError(t, err)
		gt.Value(t, filepath.Base(p)).Equal("meta.yml")
	})

	t.Run("missing names the repository", func(t *testing.T) {
		dir := t.TempDir()

		_, err := recipe.Locate(dir, "git://example/repo.git")
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, types.ErrRecipeNotFound)).Equal(true)
		gt.String(t, err.Error()).Contains("git://example/repo.git")
	})
}
