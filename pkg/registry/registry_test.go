package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	assert.NotEmpty(t, catalog.Version)
	for _, name := range []string{
		"Chess Club", "Programming Class", "Gym Class", "Soccer Team", "Basketball Club",
		"Art Club", "Drama Club", "Photography Club", "Math Club", "Debate Team",
	} {
		activity, ok := catalog.Find(name)
		require.True(t, ok, name)
		assert.Positive(t, activity.MaxParticipants, name)
		assert.LessOrEqual(t, len(activity.Participants), activity.MaxParticipants, name)
	}
}

func TestShippedCatalogMatchesDefault(t *testing.T) {
	shipped, err := LoadCatalog(filepath.Join("..", "..", "configs", "activities.json"))
	require.NoError(t, err)
	builtin, err := DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, builtin.Activities, shipped.Activities)
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "not json",
			data:    "{",
			wantErr: "validation error",
		},
		{
			name:    "missing activities",
			data:    `{"version": "1"}`,
			wantErr: "catalog validation failed",
		},
		{
			name:    "zero capacity",
			data:    `{"activities": [{"name": "Chess Club", "description": "", "schedule": "", "max_participants": 0}]}`,
			wantErr: "catalog validation failed",
		},
		{
			name:    "empty name",
			data:    `{"activities": [{"name": "", "description": "", "schedule": "", "max_participants": 3}]}`,
			wantErr: "catalog validation failed",
		},
		{
			name:    "duplicate participants",
			data:    `{"activities": [{"name": "A", "description": "", "schedule": "", "max_participants": 3, "participants": ["a@x.edu", "a@x.edu"]}]}`,
			wantErr: "catalog validation failed",
		},
		{
			name: "duplicate names",
			data: `{"activities": [
				{"name": "A", "description": "", "schedule": "", "max_participants": 3},
				{"name": "A", "description": "", "schedule": "", "max_participants": 4}
			]}`,
			wantErr: `duplicate activity name "A"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveAndLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	catalog := &ActivityCatalog{Version: "2.0.0"}

	assert.True(t, catalog.Upsert(Activity{Name: "Robotics", Description: "Build robots", Schedule: "Mondays", MaxParticipants: 8}))
	assert.False(t, catalog.Upsert(Activity{Name: "Robotics", Description: "Build robots", Schedule: "Tuesdays", MaxParticipants: 9}))
	require.NoError(t, SaveCatalog(path, catalog))

	loaded, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, loaded.Activities, 1)
	assert.Equal(t, "Tuesdays", loaded.Activities[0].Schedule)
	assert.Equal(t, 9, loaded.Activities[0].MaxParticipants)
	assert.NotEmpty(t, loaded.LastUpdated)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, os.IsNotExist(err))
}
