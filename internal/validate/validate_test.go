package validate

import (
	"testing"

	"ponydex/internal/catalog"
	"ponydex/internal/catalog/catalogtest"
)

const brokenCatalog = `{
  "languages": {"english": {"name": "English", "code": "en"}},
  "locations": {"PONYVILLE": {"english": "ponyville"}},
  "group_quests": {"quests": {}},
  "categories": {
    "ponies": {
      "name": {"english": "Ponies"},
      "objects": {
        "Pony_Lost": {
          "name": {"english": "Lost Pony"},
          "location": "PONYVILLE",
          "house": "House_Missing",
          "group": ["Pony_Ghost"],
          "pro": "GQ_Missing"
        },
        "Pony_Fake": {
          "name": {"english": "Fake"},
          "location": "EVERFREE",
          "changeling": {"is_changeling": true, "id": "Pony_Nobody"}
        },
        "Pony_Nameless": {
          "name": {"french": "Sans Nom"},
          "location": "PONYVILLE"
        },
        "Pony_Twin_A": {"name": {"english": "Twin"}, "location": "PONYVILLE"},
        "Pony_Twin_B": {"name": {"english": "Twin"}, "location": "PONYVILLE"},
        "Pony_Twin_C": {"name": {"english": "Twin"}, "location": "PONYVILLE"}
      }
    },
    "houses": {
      "name": {"english": "Houses"},
      "objects": {
        "House_Empty": {
          "name": {"english": "Empty House"},
          "location": "PONYVILLE",
          "residents": ["Pony_Lost", "Pony_Ghost"],
          "visitors": ["Pony_Phantom"]
        }
      }
    }
  }
}`

func TestRun_CleanCatalog(t *testing.T) {
	report, err := Run(catalogtest.Load(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", report.Issues)
	}
	if report.HasErrors() {
		t.Fatalf("expected no errors")
	}
}

func TestRun_BrokenReferences(t *testing.T) {
	cat, err := catalog.Parse([]byte(brokenCatalog))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	report, err := Run(cat)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	tests := []struct {
		code     string
		entity   string
		severity Severity
	}{
		{codeDanglingHouse, "Pony_Lost", SeverityError},
		{codeDanglingGroup, "Pony_Lost", SeverityError},
		{codeUnknownQuest, "Pony_Lost", SeverityWarn},
		{codeDanglingChangeling, "Pony_Fake", SeverityError},
		{codeUnknownLocation, "Pony_Fake", SeverityWarn},
		{codeMissingName, "Pony_Nameless", SeverityError},
		{codeNameCollision, "Pony_Twin_C", SeverityWarn},
		{codeDanglingResident, "House_Empty", SeverityError},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			issue, ok := findIssue(report.Issues, tc.code, tc.entity)
			if !ok {
				t.Fatalf("expected %s issue for %s, got %+v", tc.code, tc.entity, report.Issues)
			}
			if issue.Severity != tc.severity {
				t.Fatalf("expected severity %s, got %s", tc.severity, issue.Severity)
			}
		})
	}

	if n := countIssues(report.Issues, codeDanglingResident); n != 2 {
		t.Fatalf("expected ghost resident and phantom visitor, got %d", n)
	}
	if _, ok := findIssue(report.Issues, codeNameCollision, "Pony_Twin_B"); ok {
		t.Fatalf("expected second twin to take the qualified name")
	}
	if !report.HasErrors() {
		t.Fatalf("expected errors")
	}
	if report.Count(SeverityWarn) != 3 {
		t.Fatalf("expected 3 warnings, got %d", report.Count(SeverityWarn))
	}
}

func TestRun_RequiresCatalog(t *testing.T) {
	if _, err := Run(nil); err == nil {
		t.Fatalf("expected error for nil catalog")
	}
}

func findIssue(issues []Issue, code, entity string) (Issue, bool) {
	for _, issue := range issues {
		if issue.Code == code && issue.Entity == entity {
			return issue, true
		}
	}
	return Issue{}, false
}

func countIssues(issues []Issue, code string) int {
	n := 0
	for _, issue := range issues {
		if issue.Code == code {
			n++
		}
	}
	return n
}
