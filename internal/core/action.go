package core

import "fmt"

// ActionKind enumerates the side effects an evaluation may request.
type ActionKind string

const (
	ActionRetractSignal ActionKind = "retract_signal"
	ActionPostComment   ActionKind = "post_comment"
)

// Action is a side effect planned by the orchestrator. Actions are data so the
// decision logic never talks to the review host directly.
type Action struct {
	Kind     ActionKind
	SignalID int64
	Body     string
}

// RetractSignal plans the removal of a stale approval signal.
func RetractSignal(id int64) Action {
	return Action{Kind: ActionRetractSignal, SignalID: id}
}

// PostComment plans a comment on the change.
func PostComment(body string) Action {
	return Action{Kind: ActionPostComment, Body: body}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionRetractSignal:
		return fmt.Sprintf("retract signal %d", a.SignalID)
	case ActionPostComment:
		return fmt.Sprintf("post comment (%d bytes)", len(a.Body))
	default:
		return string(a.Kind)
	}
}
