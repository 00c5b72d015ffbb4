package usecase

import (
	"strings"

	"github.com/m-mizutani/roboto/pkg/domain/model"
)

// CompareSection classifies the dependencies of one requirements section.
// Current-list order drives the output: each current dependency yields
// exactly one row (identical, mismatched or current-only, deciding on the
// first name match in the found list), then every found dependency whose
// name never appears in the current list yields a found-only row.
func CompareSection(current, found []model.Dependency) []model.ComparisonRow {
	rows := make([]model.ComparisonRow, 0, len(current)+len(found))

	for i := range current {
		cur := current[i]
		row := model.ComparisonRow{Status: model.StatusCurrentOnly, Current: &cur}
		for j := range found {
			fnd := found[j]
			if fnd.Name != cur.Name {
				continue
			}
			if fnd.Equal(cur) {
				row = model.ComparisonRow{Status: model.StatusIdentical, Current: &cur, Found: &fnd}
			} else {
				row = model.ComparisonRow{Status: model.StatusMismatched, Current: &cur, Found: &fnd}
			}
			break
		}
		rows = append(rows, row)
	}

	currentNames := make(map[string]struct{}, len(current))
	for _, dep := range current {
		currentNames[dep.Name] = struct{}{}
	}
	for i := range found {
		fnd := found[i]
		if _, ok := currentNames[fnd.Name]; ok {
			continue
		}
		rows = append(rows, model.ComparisonRow{Status: model.StatusFoundOnly, Found: &fnd})
	}

	return rows
}

// SectionTable renders one section's comparison rows as a markdown table
func SectionTable(section model.SectionName, rows []model.ComparisonRow) string {
	var sb strings.Builder

	sb.WriteString("================ **" + strings.ToUpper(string(section)) + "** ================")
	sb.WriteString("\nRequirements for **" + string(section) + "**\n")
	sb.WriteString("| Current Deps | Grayskull found |  |\n")
	sb.WriteString("|--------------|-----------------|--|\n")

	for _, row := range rows {
		switch row.Status {
		case model.StatusIdentical:
			sb.WriteString("| " + row.Found.String() + " | " + row.Found.String() + " | :heavy_check_mark: |\n")
		case model.StatusMismatched:
			sb.WriteString("| " + row.Current.String() + " | " + row.Found.String() + " | :heavy_exclamation_mark: |\n")
		case model.StatusCurrentOnly:
			sb.WriteString("| " + row.Current.String() + " |  | :x: |\n")
		case model.StatusFoundOnly:
			sb.WriteString("| | " + row.Found.String() + " | :heavy_plus_sign: |\n")
		}
	}

	return sb.String()
}

// ComparisonMessage builds the full comment body for a recipe pair. The
// sections appear in the fixed order build, host, run separated by blank
// lines; a section missing from the current recipe is skipped, and a
// section missing from the generated recipe is compared as empty.
func ComparisonMessage(current, found *model.Recipe) string {
	var tables []string

	for _, section := range model.AllSections {
		if !current.Requirements.Has(section) {
			continue
		}
		rows := CompareSection(current.Requirements[section], found.Requirements[section])
		tables = append(tables, SectionTable(section, rows))
	}

	return strings.Join(tables, "\n\n")
}
