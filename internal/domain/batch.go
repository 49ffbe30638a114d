package domain

// IssueRequest is one issue creation call.
type IssueRequest struct {
	Title string
	Body  string
}

// Issue is an issue created in the remote tracker.
type Issue struct {
	URL    string
	Number int
}

// ItemResult is the outcome of submitting a single draft.
type ItemResult struct {
	Err   error
	Issue *Issue
	Title string
	Index int
}

// OK reports whether the item was created.
func (r ItemResult) OK() bool {
	return r.Err == nil
}

// BatchResult summarizes a batch submission.
// Fields are ordered to minimize memory padding.
type BatchResult struct {
	Items     []ItemResult
	Attempted int
	Succeeded int
	Cleared   bool
}

// Failed returns the number of items that were not created.
func (r *BatchResult) Failed() int {
	return r.Attempted - r.Succeeded
}

// FailedDrafts returns the titles of failed items in submission order.
func (r *BatchResult) FailedDrafts() []Draft {
	var drafts []Draft
	for _, item := range r.Items {
		if !item.OK() {
			drafts = append(drafts, Draft(item.Title))
		}
	}
	return drafts
}
