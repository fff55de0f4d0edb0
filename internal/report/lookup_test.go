package report

import (
	"testing"

	"ledgerstats/internal/ledger"
)

func TestBuildCategoryLookup(t *testing.T) {
	groups := []ledger.CategoryGroup{
		{ID: "g1", Name: "Everyday"},
	}
	categories := []ledger.Category{
		{ID: "c1", Name: "Food", GroupID: "g1"},
		{ID: "c2", Name: "Archived", GroupID: "g1", Hidden: true},
		{ID: "c3", Name: "Orphan", GroupID: "gone"},
	}

	lookup := BuildCategoryLookup(groups, categories)
	if len(lookup) != 3 {
		t.Fatalf("len(lookup) = %d, want 3", len(lookup))
	}
	if c := lookup["c1"]; c.Name != "Food" || c.Group != "Everyday" || !c.Active {
		t.Errorf("lookup[c1] = %+v", c)
	}
	if c := lookup["c2"]; c.Active {
		t.Error("hidden category should be inactive")
	}
	if c := lookup["c3"]; c.Group != "" {
		t.Errorf("unknown group resolved to %q, want empty", c.Group)
	}
}

func TestBuildPayeeLookup(t *testing.T) {
	lookup := BuildPayeeLookup([]ledger.Payee{
		{ID: "p1", Name: "Store"},
		{ID: "p2", Name: "Landlord"},
	})
	if lookup["p1"] != "Store" || lookup["p2"] != "Landlord" {
		t.Errorf("lookup = %v", lookup)
	}
	if _, ok := lookup["p3"]; ok {
		t.Error("unexpected entry for unknown payee")
	}
}
