package review

import (
	"testing"

	"coursedocs/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		status  string
		reason  string
		want    Decision
		wantErr error
	}{
		{status: "", want: nil},
		{status: "pending", want: Hold{}},
		{status: " Approved ", want: Approve{}},
		{status: "rejected", reason: " blurry scan ", want: Reject{Reason: "blurry scan"}},
		{status: "rejected", want: Reject{}},
		{status: "archived", wantErr: ErrUnknownStatus},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got, err := ParseDecision(tt.status, tt.reason)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlan_Totality(t *testing.T) {
	decisions := map[string]Decision{
		"none":    nil,
		"hold":    Hold{},
		"approve": Approve{},
		"reject":  Reject{Reason: "duplicate upload"},
	}

	want := map[model.Status]map[string]struct {
		action Action
		err    error
	}{
		model.StatusPending: {
			"none":    {ActionNone, nil},
			"hold":    {ActionNone, nil},
			"approve": {ActionPromote, nil},
			"reject":  {ActionPurge, nil},
		},
		model.StatusApproved: {
			"none":    {ActionNone, nil},
			"hold":    {ActionNone, ErrInvalidTransition},
			"approve": {ActionNone, ErrInvalidTransition},
			"reject":  {ActionNone, ErrInvalidTransition},
		},
		model.StatusRejected: {
			"none":    {ActionNone, ErrTerminalState},
			"hold":    {ActionNone, ErrTerminalState},
			"approve": {ActionNone, ErrTerminalState},
			"reject":  {ActionNone, ErrTerminalState},
		},
	}

	for from, row := range want {
		for name, exp := range row {
			t.Run(string(from)+"/"+name, func(t *testing.T) {
				action, err := Plan(from, decisions[name])
				assert.Equal(t, exp.action, action)
				if exp.err != nil {
					assert.ErrorIs(t, err, exp.err)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	}
}

func TestPlan_RejectNeedsReason(t *testing.T) {
	_, err := Plan(model.StatusPending, Reject{Reason: "   "})
	assert.ErrorIs(t, err, ErrMissingRejectionReason)
}

func TestPlan_UnknownState(t *testing.T) {
	_, err := Plan(model.Status("archived"), Approve{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApply(t *testing.T) {
	t.Run("approve", func(t *testing.T) {
		doc := &model.Document{Status: model.StatusPending}
		action, err := Apply(doc, Approve{}, "admin-1")
		require.NoError(t, err)
		assert.Equal(t, ActionPromote, action)
		assert.Equal(t, model.StatusApproved, doc.Status)
		assert.Equal(t, "admin-1", doc.ReviewerID)
	})

	t.Run("reject", func(t *testing.T) {
		doc := &model.Document{Status: model.StatusPending}
		action, err := Apply(doc, Reject{Reason: " blurry scan "}, "admin-1")
		require.NoError(t, err)
		assert.Equal(t, ActionPurge, action)
		assert.Equal(t, model.StatusRejected, doc.Status)
		assert.Equal(t, "blurry scan", doc.RejectionReason)
	})

	t.Run("refused leaves document untouched", func(t *testing.T) {
		doc := &model.Document{Status: model.StatusApproved, PermanentPath: "300/x.pdf"}
		_, err := Apply(doc, Approve{}, "admin-1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, model.StatusApproved, doc.Status)
		assert.Equal(t, "300/x.pdf", doc.PermanentPath)
	})
}

func TestRollback(t *testing.T) {
	doc := &model.Document{Status: model.StatusApproved, PermanentPath: "300/x.pdf", ReviewerID: "admin-1"}
	require.NoError(t, Rollback(doc))
	assert.Equal(t, model.StatusPending, doc.Status)
	assert.Empty(t, doc.PermanentPath)
	assert.Empty(t, doc.ReviewerID)

	assert.ErrorIs(t, Rollback(doc), ErrInvalidTransition)
	assert.ErrorIs(t, Rollback(&model.Document{Status: model.StatusRejected}), ErrInvalidTransition)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "none", ActionNone.String())
	assert.Equal(t, "promote", ActionPromote.String())
	assert.Equal(t, "purge", ActionPurge.String())
}
