package model

// Scope is the breadth of a permission grant, ordered from narrowest to broadest.
type Scope string

const (
	ScopeOwn          Scope = "own"
	ScopeTeam         Scope = "team"
	ScopeDepartment   Scope = "department"
	ScopeOrganization Scope = "organization"
	ScopeGlobal       Scope = "global"
)

var scopeRanks = map[Scope]int{
	ScopeOwn:          1,
	ScopeTeam:         2,
	ScopeDepartment:   3,
	ScopeOrganization: 4,
	ScopeGlobal:       5,
}

// Rank returns the ordinal of the scope for broadest-wins comparisons.
// Unknown or empty scopes rank 0, below every valid scope.
func (s Scope) Rank() int {
	return scopeRanks[s]
}

func (s Scope) Valid() bool {
	_, ok := scopeRanks[s]
	return ok
}

// CascadesToDescendants reports whether a grant at an ancestor team is broad
// enough to apply to descendant teams. Own and team grants stay local.
func (s Scope) CascadesToDescendants() bool {
	return s == ScopeDepartment || s == ScopeOrganization || s == ScopeGlobal
}
