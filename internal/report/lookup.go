package report

import (
	"ledgerstats/internal/core"
	"ledgerstats/internal/ledger"
)

// BuildCategoryLookup resolves raw category records into a read-only map from
// category id to the category with its group name attached. A category whose
// group id is unknown keeps an empty group name. Hidden categories are kept in
// the lookup (transactions may still reference them) but marked inactive.
func BuildCategoryLookup(groups []ledger.CategoryGroup, categories []ledger.Category) map[string]core.Category {
	groupNames := make(map[string]string, len(groups))
	for _, g := range groups {
		groupNames[g.ID] = g.Name
	}

	lookup := make(map[string]core.Category, len(categories))
	for _, c := range categories {
		lookup[c.ID] = core.Category{
			Name:   c.Name,
			Group:  groupNames[c.GroupID],
			Active: !c.Hidden,
		}
	}
	return lookup
}

// BuildPayeeLookup resolves raw payee records into a map from payee id to name.
func BuildPayeeLookup(payees []ledger.Payee) map[string]string {
	lookup := make(map[string]string, len(payees))
	for _, p := range payees {
		lookup[p.ID] = p.Name
	}
	return lookup
}
