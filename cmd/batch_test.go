package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-health/triage-cli/internal/model"
)

func writeMessagesFile(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messages.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0644))
	return path
}

func TestReadMessages(t *testing.T) {
	path := writeMessagesFile(t, "DR SMITH FEVER\n\nDR JONES COUGH\n")

	messages, err := readMessages(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"DR SMITH FEVER", "DR JONES COUGH"}, messages)
}

func TestReadMessages_Limit(t *testing.T) {
	path := writeMessagesFile(t, "ONE\nTWO\nTHREE\n")

	messages, err := readMessages(path, 2)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestProcessBatch_OrderPreserved(t *testing.T) {
	env := newTestEnv(t)
	profile := env.Profiles.Get("general")

	messages := []string{
		"DR SMITH PATIENT SUE JONES 555-123-4567 FEVER",
		"DR LABERGE HEADACHE",
		"Patient called in about a cough",
	}

	outcomes, err := processBatch(context.Background(), env, messages, profile, 3, 100)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.Equal(t, "Smith", outcomes[0].Fields.AttendingDoctor)
	assert.Equal(t, "Laberge", outcomes[1].Fields.AttendingDoctor)
	assert.Empty(t, outcomes[2].Fields.AttendingDoctor)
	for _, o := range outcomes {
		assert.Equal(t, model.SourceRules, o.Source)
		assert.NotEmpty(t, o.Fields.ChiefComplaint)
	}
}

func TestProcessBatch_Empty(t *testing.T) {
	env := newTestEnv(t)

	outcomes, err := processBatch(context.Background(), env, nil, env.Profiles.Get("general"), 2, 10)
	require.NoError(t, err)
	assert.Nil(t, outcomes)
}
