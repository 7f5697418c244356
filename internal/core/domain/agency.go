package domain

// Agency is one entry from the eCFR agency directory.
// Agencies own a set of CFR references; aggregation walks them in order.
type Agency struct {
	Slug          string         `json:"slug"`
	Name          string         `json:"name"`
	ShortName     string         `json:"short_name,omitempty"`
	SortableName  string         `json:"sortable_name"`
	CFRReferences []CFRReference `json:"cfr_references"`
}
