// Package review is the document review state machine.
//
//	pending --Approve--> approved   (object promoted to its permanent key)
//	pending --Reject---> rejected   (object and record purged)
//	approved --rollback--> pending  (internal only, when promotion fails)
//
// Rejected is terminal. Approved accepts no reviewer decision.
package review

import (
	"errors"
	"fmt"
	"strings"

	"coursedocs/internal/model"
)

var (
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrTerminalState          = errors.New("document is in a terminal state")
	ErrUnknownStatus          = errors.New("unknown status")
	ErrMissingRejectionReason = errors.New("rejection reason is required")
)

// Decision is a reviewer's requested outcome. The concrete types are Approve, Reject and Hold.
type Decision interface {
	Target() model.Status
	isDecision()
}

// Approve promotes a pending document.
type Approve struct{}

// Reject purges a pending document. Reason must be non-empty.
type Reject struct {
	Reason string
}

// Hold keeps a pending document pending; it is what a reviewer sends to edit metadata only.
type Hold struct{}

func (Approve) Target() model.Status { return model.StatusApproved }
func (Reject) Target() model.Status  { return model.StatusRejected }
func (Hold) Target() model.Status    { return model.StatusPending }

func (Approve) isDecision() {}
func (Reject) isDecision()  {}
func (Hold) isDecision()    {}

// ParseDecision turns the wire form {status, rejection_reason} into a Decision.
// An empty status yields a nil Decision, meaning "leave the status alone".
func ParseDecision(status, reason string) (Decision, error) {
	switch model.Status(strings.ToLower(strings.TrimSpace(status))) {
	case "":
		return nil, nil
	case model.StatusPending:
		return Hold{}, nil
	case model.StatusApproved:
		return Approve{}, nil
	case model.StatusRejected:
		return Reject{Reason: strings.TrimSpace(reason)}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
}

// Action is the side effect the caller must carry out for a planned transition.
type Action int

const (
	// ActionNone changes no object; only the record is saved.
	ActionNone Action = iota
	// ActionPromote copies the staging object to its permanent key.
	ActionPromote
	// ActionPurge deletes the object and then the record.
	ActionPurge
)

func (a Action) String() string {
	switch a {
	case ActionPromote:
		return "promote"
	case ActionPurge:
		return "purge"
	}
	return "none"
}

// Plan decides what applying d to a document in state from requires. It does not mutate anything.
func Plan(from model.Status, d Decision) (Action, error) {
	switch from {
	case model.StatusRejected:
		return ActionNone, ErrTerminalState
	case model.StatusApproved:
		if d == nil {
			return ActionNone, nil
		}
		return ActionNone, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, d.Target())
	case model.StatusPending:
		switch d := d.(type) {
		case nil, Hold:
			return ActionNone, nil
		case Approve:
			return ActionPromote, nil
		case Reject:
			if strings.TrimSpace(d.Reason) == "" {
				return ActionNone, ErrMissingRejectionReason
			}
			return ActionPurge, nil
		}
	}
	return ActionNone, fmt.Errorf("%w: from %q", ErrInvalidTransition, from)
}

// Apply plans d against doc and, when allowed, moves doc to the decision's target state.
// For a promotion the caller still owns the object copy and must call Rollback if it fails.
func Apply(doc *model.Document, d Decision, reviewerID string) (Action, error) {
	action, err := Plan(doc.Status, d)
	if err != nil {
		return ActionNone, err
	}
	switch action {
	case ActionPromote:
		doc.Status = model.StatusApproved
		doc.ReviewerID = reviewerID
	case ActionPurge:
		doc.Status = model.StatusRejected
		doc.RejectionReason = strings.TrimSpace(d.(Reject).Reason)
		doc.ReviewerID = reviewerID
	}
	return action, nil
}

// Rollback reverts a failed promotion: approved goes back to pending and the permanent key is cleared.
// It is the only way out of approved.
func Rollback(doc *model.Document) error {
	if doc.Status != model.StatusApproved {
		return fmt.Errorf("%w: rollback from %s", ErrInvalidTransition, doc.Status)
	}
	doc.Status = model.StatusPending
	doc.PermanentPath = ""
	doc.ReviewerID = ""
	return nil
}
