package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_ObjectKey(t *testing.T) {
	d := &Document{StagingPath: "temp/300/first-semester/shared/C101/a.pdf"}
	assert.Equal(t, "temp/300/first-semester/shared/C101/a.pdf", d.ObjectKey())

	d.PermanentPath = "300/first-semester/shared/C101/a.pdf"
	assert.Equal(t, "300/first-semester/shared/C101/a.pdf", d.ObjectKey())
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusApproved.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, Status("archived").Valid())
}
