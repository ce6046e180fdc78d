// Package validate checks a loaded catalog for broken cross references and
// names the lookup tables cannot hold.
package validate

import (
	"fmt"
	"strings"

	"ponydex/internal/catalog"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeDanglingHouse      = "dangling_house"
	codeDanglingResident   = "dangling_resident"
	codeDanglingChangeling = "dangling_changeling"
	codeDanglingGroup      = "dangling_group"
	codeUnknownQuest       = "unknown_quest"
	codeUnknownLocation    = "unknown_location"
	codeMissingName        = "missing_name"
	codeNameCollision      = "name_collision"
)

const randomPro = "random"

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Category string
	Entity   string
}

type Report struct {
	Issues []Issue
}

func (r *Report) Count(severity Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

func (r *Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

func Run(cat *catalog.Catalog) (*Report, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	issues := make([]Issue, 0)
	for _, category := range cat.Categories() {
		ids, err := cat.IDs(category.Key)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", category.Key, err)
		}
		for _, id := range ids {
			issues = append(issues, validateEntity(cat, cat.Get(id, category.Key))...)
		}

		table, err := cat.BuildNameTable(category.Key, catalog.NameTableOptions{IncludeUnused: true})
		if err != nil {
			return nil, fmt.Errorf("build name table %s: %w", category.Key, err)
		}
		for _, skipped := range table.Skipped {
			if skipped.Reason != catalog.SkipDuplicate {
				continue
			}
			kind := "name"
			if skipped.Alt {
				kind = "alternate name"
			}
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     codeNameCollision,
				Message:  fmt.Sprintf("%s %q already taken", kind, skipped.Name),
				Category: category.Key,
				Entity:   skipped.ID,
			})
		}
	}

	return &Report{Issues: issues}, nil
}

func validateEntity(cat *catalog.Catalog, e *catalog.Entity) []Issue {
	var issues []Issue
	add := func(severity Severity, code, format string, args ...any) {
		issues = append(issues, Issue{
			Severity: severity,
			Code:     code,
			Message:  fmt.Sprintf(format, args...),
			Category: e.Category,
			Entity:   e.ID,
		})
	}

	if strings.TrimSpace(e.Name["english"]) == "" {
		add(SeverityError, codeMissingName, "missing english name")
	}
	if e.Location != "" && !cat.HasLocation(e.Location) {
		add(SeverityWarn, codeUnknownLocation, "unknown location: %s", e.Location)
	}

	switch attrs := e.Attributes.(type) {
	case *catalog.PonyAttributes:
		if attrs.House != "" && cat.Get(attrs.House, catalog.CategoryHouses) == nil {
			add(SeverityError, codeDanglingHouse, "house does not exist: %s", attrs.House)
		}
		if attrs.Changeling.ID != "" && cat.Get(attrs.Changeling.ID, catalog.CategoryPonies) == nil {
			add(SeverityError, codeDanglingChangeling, "changeling target does not exist: %s", attrs.Changeling.ID)
		}
		for _, member := range attrs.Group {
			if cat.Get(member, catalog.CategoryPonies) == nil {
				add(SeverityError, codeDanglingGroup, "group member does not exist: %s", member)
			}
		}
		if attrs.Pro != "" && attrs.Pro != randomPro && !cat.HasQuest(attrs.Pro) {
			add(SeverityWarn, codeUnknownQuest, "unknown group quest: %s", attrs.Pro)
		}
	case *catalog.HouseAttributes:
		issues = append(issues, validateResidents(cat, e, attrs.Residents, attrs.Visitors)...)
	case *catalog.ShopAttributes:
		issues = append(issues, validateResidents(cat, e, attrs.Residents, attrs.Visitors)...)
	}

	return issues
}

func validateResidents(cat *catalog.Catalog, e *catalog.Entity, residents, visitors []string) []Issue {
	var issues []Issue
	for _, ids := range [][]string{residents, visitors} {
		for _, id := range ids {
			if cat.Get(id, catalog.CategoryPonies) != nil {
				continue
			}
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeDanglingResident,
				Message:  fmt.Sprintf("pony does not exist: %s", id),
				Category: e.Category,
				Entity:   e.ID,
			})
		}
	}
	return issues
}
