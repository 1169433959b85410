package responses

// OptionLists bundles the reference vocabularies the dialog renders.
type OptionLists struct {
	Days  []string `json:"days,omitempty"`
	Times []string `json:"times,omitempty"`
}
