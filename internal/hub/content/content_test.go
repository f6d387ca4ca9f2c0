// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestRef_Validate verifies that only the two known kinds with non-empty IDs
pass validation.
*/
func TestRef_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ref     Ref
		wantErr bool
	}{
		{"valid script ref", ScriptRef("mock-1"), false},
		{"valid program ref", ProgramRef("prog-1"), false},
		{"unknown kind", Ref{Kind: "comment", ID: "x"}, true},
		{"empty kind", Ref{ID: "x"}, true},
		{"empty id", Ref{Kind: KindScript}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ref.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestRef_Columns verifies the Ref splits into exactly one set column and
round-trips back through FromColumns.
*/
func TestRef_Columns(t *testing.T) {
	scriptID, programID := ScriptRef("mock-1").Columns()
	require.NotNil(t, scriptID)
	assert.Equal(t, "mock-1", *scriptID)
	assert.Nil(t, programID)

	scriptID, programID = ProgramRef("prog-1").Columns()
	assert.Nil(t, scriptID)
	require.NotNil(t, programID)
	assert.Equal(t, "prog-1", *programID)

	ref, ok := FromColumns(scriptID, nil)
	assert.False(t, ok, "both-or-neither column shapes must be rejected")
	_ = ref

	ref, ok = FromColumns(nil, programID)
	require.True(t, ok)
	assert.Equal(t, ProgramRef("prog-1"), ref)
}
