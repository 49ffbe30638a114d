// Package domain contains core business entities and interfaces.
package domain

import "strings"

// DraftsKey is the key under which the whole draft list is persisted.
const DraftsKey = "drafts"

// DefaultIssueBody is the body sent with every issue created from a draft.
const DefaultIssueBody = "Created from an idraft draft."

// Draft is a pending issue title that has not been submitted yet.
// A draft has no stable ID; its identity is its position in the queue.
type Draft string

// String returns the draft title.
func (d Draft) String() string {
	return string(d)
}

// ValidateTitle checks that title has at least one non-whitespace character.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// DraftsFromStrings converts plain titles to drafts.
func DraftsFromStrings(titles []string) []Draft {
	drafts := make([]Draft, len(titles))
	for i, t := range titles {
		drafts[i] = Draft(t)
	}
	return drafts
}

// DraftStrings converts drafts to plain titles.
func DraftStrings(drafts []Draft) []string {
	titles := make([]string, len(drafts))
	for i, d := range drafts {
		titles[i] = string(d)
	}
	return titles
}
