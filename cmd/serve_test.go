package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-health/triage-cli/internal/config"
	"github.com/meridian-health/triage-cli/internal/directory"
	"github.com/meridian-health/triage-cli/internal/llm"
	"github.com/meridian-health/triage-cli/internal/model"
	"github.com/meridian-health/triage-cli/internal/specialty"
	"github.com/meridian-health/triage-cli/internal/triage"
)

// newTestEnv builds a rules-only parse environment with no directory store.
func newTestEnv(t *testing.T) *parseEnv {
	t.Helper()
	cfg = &config.Config{
		Parser: config.ParserConfig{DefaultSpecialty: "general"},
	}
	profiles, err := specialty.Load("")
	require.NoError(t, err)
	return &parseEnv{
		Service:  llm.NewService(nil, triage.New()),
		Profiles: profiles,
	}
}

func TestRouter_Healthz(t *testing.T) {
	router := newRouter(newTestEnv(t))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_Parse(t *testing.T) {
	router := newRouter(newTestEnv(t))

	payload := map[string]string{
		"message": "DR LABERGE PATIENT NAME REDACTED. ,§713-854-9439,,DOB:06/30/1993NOT OBCONCERNS FOR MASTITIST,SEVEREPAIN ,POST PARTUM 1WKS,--",
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var outcome model.ParseOutcome
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &outcome))
	assert.Equal(t, model.SourceRules, outcome.Source)
	assert.Equal(t, "Laberge", outcome.Fields.AttendingDoctor)
	assert.Equal(t, "(713) 854-9439", outcome.Fields.CallbackNumber)
	assert.Equal(t, "[REDACTED]", outcome.Fields.PatientName)
	assert.NotEmpty(t, outcome.Fields.ChiefComplaint)
}

func TestRouter_Parse_MissingMessage(t *testing.T) {
	router := newRouter(newTestEnv(t))

	req := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewReader([]byte(`{}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_Parse_BadBody(t *testing.T) {
	router := newRouter(newTestEnv(t))

	req := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewReader([]byte("not json")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_Parse_KnownDoctor(t *testing.T) {
	env := newTestEnv(t)

	store, err := directory.NewSQLite(filepath.Join(t.TempDir(), "directory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	_, err = store.AddDoctor(context.Background(), "LaBerge", "", "ob_gyn")
	require.NoError(t, err)
	env.Store = store

	router := newRouter(env)

	payload := map[string]string{"message": "DR LABERGE PATIENT MARY WARD FEVER"}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		model.ParseOutcome
		KnownDoctor *bool `json:"known_doctor"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.KnownDoctor)
	assert.True(t, *resp.KnownDoctor)
	// The directory spelling wins over the extractor's capitalization.
	assert.Equal(t, "LaBerge", resp.Fields.AttendingDoctor)
}

func TestRouter_Parse_UnknownSpecialtyFallsBack(t *testing.T) {
	router := newRouter(newTestEnv(t))

	payload := map[string]string{"message": "PATIENT HAS A FEVER", "specialty": "dermatology"}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/v1/parse", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var outcome model.ParseOutcome
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &outcome))
	assert.NotEmpty(t, outcome.Fields.ChiefComplaint)
}
