// Package recipe extracts the requirements structure from conda recipe
// files. Platform selectors live in YAML comments ("# [win]"), which any
// YAML unmarshaller discards, so the requirements block is scanned line by
// line instead of going through a YAML tree.
package recipe

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/roboto/pkg/domain/model"
	"github.com/m-mizutani/roboto/pkg/domain/types"
)

// recipeFileNames are checked in order when locating a recipe in a working tree
var recipeFileNames = []string{"meta.yaml", "meta.yml"}

// Locate returns the recipe file path under <dir>/recipe, preferring
// meta.yaml over meta.yml. The srcURL is only used to make the failure
// message name the repository the clone came from.
func Locate(dir, srcURL string) (string, error) {
	recipeDir := filepath.Join(dir, "recipe")
	for _, name := range recipeFileNames {
		p := filepath.Join(recipeDir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}

	return "", goerr.Wrap(types.ErrRecipeNotFound, "recipe file not found - "+srcURL,
		goerr.V("repository", srcURL),
		goerr.V("recipe_dir", recipeDir),
	)
}

// ParseFile loads a recipe file into the requirements model
func ParseFile(path string) (*model.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open recipe file", goerr.V("path", path))
	}
	defer f.Close()

	r, err := Parse(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse recipe file", goerr.V("path", path))
	}
	return r, nil
}

var selectorPattern = regexp.MustCompile(`#\s*\[(.*?)\]`)

// Parse scans recipe text and extracts the package name and the
// requirements sections. Everything outside those blocks is ignored.
func Parse(r io.Reader) (*model.Recipe, error) {
	recipe := &model.Recipe{Requirements: model.Requirements{}}

	var (
		inPackage      bool
		inRequirements bool
		blockIndent    int
		section        model.SectionName
		haveSection    bool
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		switch {
		case trimmed == "package:":
			inPackage, inRequirements, haveSection = true, false, false
			blockIndent = indent
			continue
		case trimmed == "requirements:":
			inPackage, inRequirements, haveSection = false, true, false
			blockIndent = indent
			continue
		case (inPackage || inRequirements) && indent <= blockIndent:
			// left the block
			inPackage, inRequirements, haveSection = false, false, false
		}

		if inPackage {
			if name, ok := strings.CutPrefix(trimmed, "name:"); ok {
				recipe.PackageName = strings.Trim(strings.TrimSpace(name), `"'`)
			}
			continue
		}

		if !inRequirements {
			continue
		}

		if item, ok := strings.CutPrefix(trimmed, "-"); ok {
			if !haveSection {
				continue
			}
			dep := ParseDependency(item)
			if dep.Name == "" {
				continue
			}
			recipe.Requirements[section] = append(recipe.Requirements[section], dep)
			continue
		}

		for _, s := range model.AllSections {
			if trimmed == string(s)+":" {
				section, haveSection = s, true
				// section key exists even when it stays empty
				if _, ok := recipe.Requirements[s]; !ok {
					recipe.Requirements[s] = []model.Dependency{}
				}
				break
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read recipe")
	}

	return recipe, nil
}

// ParseDependency splits one requirements list item into package name,
// version constraint and platform selector. Jinja expressions are kept
// verbatim as the package name.
func ParseDependency(item string) model.Dependency {
	var dep model.Dependency

	if m := selectorPattern.FindStringSubmatch(item); m != nil {
		dep.Selector = strings.TrimSpace(m[1])
	}

	spec := item
	if idx := strings.Index(spec, "#"); idx >= 0 {
		spec = spec[:idx]
	}
	spec = strings.Trim(strings.TrimSpace(spec), `"'`)

	if strings.HasPrefix(spec, "{{") {
		dep.Name = spec
		return dep
	}

	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return dep
	}
	dep.Name = fields[0]
	dep.Constraint = strings.Join(fields[1:], " ")
	return dep
}
