package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSnapshot_OrdersByID(t *testing.T) {
	projects := map[int]*Project{
		30: {ID: 30, Name: "c", Creator: "alice", CreatedDate: testDate, IllustrationServices: IllustrationServices{}},
		10: {ID: 10, Name: "a", Creator: "alice", CreatedDate: testDate, IllustrationServices: IllustrationServices{}},
		20: {ID: 20, Name: "b", Creator: "bob", CreatedDate: testDate, IllustrationServices: IllustrationServices{}},
	}

	data, err := EncodeSnapshot(projects, time.Unix(0, 0))
	require.NoError(t, err)

	var doc snapshotDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, SnapshotVersion, doc.Version)
	require.Len(t, doc.Projects, 3)
	assert.Equal(t, 10, doc.Projects[0].ID)
	assert.Equal(t, 20, doc.Projects[1].ID)
	assert.Equal(t, 30, doc.Projects[2].ID)
}

func TestEncodeSnapshot_Empty(t *testing.T) {
	data, err := EncodeSnapshot(map[int]*Project{}, time.Now())
	require.NoError(t, err)

	projects, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestDecodeSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{
			name:    "valid",
			input:   `{"version":1,"projects":[{"id":1,"name":"a","creator":"alice"},{"id":2,"name":"b","creator":"bob"}]}`,
			wantLen: 2,
		},
		{
			name:    "null projects",
			input:   `{"version":1,"projects":null}`,
			wantLen: 0,
		},
		{
			name:    "not json",
			input:   `projects`,
			wantErr: true,
		},
		{
			name:    "wrong shape",
			input:   `{"version":1,"projects":{"1":{}}}`,
			wantErr: true,
		},
		{
			name:    "unknown version",
			input:   `{"version":2,"projects":[]}`,
			wantErr: true,
		},
		{
			name:    "missing version",
			input:   `{"projects":[]}`,
			wantErr: true,
		},
		{
			name:    "duplicate id",
			input:   `{"version":1,"projects":[{"id":1},{"id":1}]}`,
			wantErr: true,
		},
		{
			name:    "id out of range",
			input:   `{"version":1,"projects":[{"id":10000000}]}`,
			wantErr: true,
		},
		{
			name:    "negative id",
			input:   `{"version":1,"projects":[{"id":-1}]}`,
			wantErr: true,
		},
		{
			name:    "duplicate name for creator",
			input:   `{"version":1,"projects":[{"id":1,"name":"a","creator":"alice"},{"id":2,"name":"a","creator":"alice"}]}`,
			wantErr: true,
		},
		{
			name:    "same name for different creators",
			input:   `{"version":1,"projects":[{"id":1,"name":"a","creator":"alice"},{"id":2,"name":"a","creator":"bob"}]}`,
			wantLen: 2,
		},
		{
			name:    "null record",
			input:   `{"version":1,"projects":[null]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSnapshot([]byte(tt.input))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrCorruptSnapshot)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}
