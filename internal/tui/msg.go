package tui

import "github.com/runoshun/idraft/internal/domain"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgDraftsChanged is sent after the queue was mutated.
// Err is set when the change could not be persisted; Drafts is still current.
type MsgDraftsChanged struct {
	Err    error
	Drafts []domain.Draft
	Status string
}

func (MsgDraftsChanged) sealed() {}

// MsgAuthURL is sent when the browser login has started.
type MsgAuthURL struct {
	URL string
}

func (MsgAuthURL) sealed() {}

// MsgLoginDone is sent when the login flow has finished.
type MsgLoginDone struct {
	Err error
}

func (MsgLoginDone) sealed() {}

// MsgSubmitDone is sent when a batch submission has finished.
// Result is nil when the batch did not start.
type MsgSubmitDone struct {
	Err    error
	Result *domain.BatchResult
	Drafts []domain.Draft
}

func (MsgSubmitDone) sealed() {}
