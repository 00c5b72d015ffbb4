package model

import "strings"

// SectionName names a requirement section of a conda recipe
type SectionName string

const (
	SectionBuild SectionName = "build"
	SectionHost  SectionName = "host"
	SectionRun   SectionName = "run"
)

// AllSections lists the requirement sections in their fixed report order
var AllSections = []SectionName{SectionBuild, SectionHost, SectionRun}

// Dependency is a single recipe requirement. Matching is by package name;
// full equality additionally requires constraint and selector to match.
type Dependency struct {
	Name       string
	Constraint string
	Selector   string
}

// Equal reports whether two dependencies are fully identical
func (d Dependency) Equal(other Dependency) bool {
	return d.Name == other.Name &&
		d.Constraint == other.Constraint &&
		d.Selector == other.Selector
}

// String renders the dependency the way it appears in a recipe line:
// name, optional constraint, optional trailing selector comment.
func (d Dependency) String() string {
	var sb strings.Builder
	sb.WriteString(d.Name)
	if d.Constraint != "" {
		sb.WriteString(" " + d.Constraint)
	}
	if d.Selector != "" {
		sb.WriteString("  # [" + d.Selector + "]")
	}
	return sb.String()
}

// Requirements maps a section name to its ordered dependency list. A
// missing key means the recipe has no such section.
type Requirements map[SectionName][]Dependency

// Has reports whether the section is present in the recipe, even if empty
func (r Requirements) Has(section SectionName) bool {
	_, ok := r[section]
	return ok
}

// Recipe is the requirements structure extracted from a recipe file or
// produced by the recipe generator
type Recipe struct {
	PackageName  string
	Requirements Requirements
}
