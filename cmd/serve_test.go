package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bareebaree/transmuseTATE/constants"
	"github.com/bareebaree/transmuseTATE/model"
	"github.com/bareebaree/transmuseTATE/vocab"
)

func setupVocab(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("RESULTS_PATH", dir)

	v, err := vocab.Train([]string{"Bar Bar Position_0 Pitch_60"}, vocab.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Save(filepath.Join(dir, constants.VocabFileName)); err != nil {
		t.Fatal(err)
	}
	LoadServeFiles()
}

func TestHandleEncodeMapsUnknownToUnk(t *testing.T) {
	setupVocab(t)

	body, _ := json.Marshal(model.EncodeRequestBody{Tokens: []string{"Bar", "Pitch_61"}})
	req := httptest.NewRequest(http.MethodPost, "/encode", bytes.NewReader(body))
	w := httptest.NewRecorder()
	HandleEncode(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var encoded model.EncodeResponse
	assert.NoError(json.Unmarshal(respBody, &encoded))
	// Bar is the most frequent corpus token, Pitch_61 never occurred
	assert.Equal([]int{5, 4}, encoded.IDs)
}

func TestHandleEncodeBadBodyReturnsErrorDetail(t *testing.T) {
	setupVocab(t)

	req := httptest.NewRequest(http.MethodPost, "/encode", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	HandleEncode(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(400, resp.StatusCode)

	var errResp model.ErrorResponse
	assert.NoError(json.Unmarshal(respBody, &errResp))
	assert.Equal("Bad request body", errResp.Error)
}

func TestHandleVocabStats(t *testing.T) {
	setupVocab(t)

	req := httptest.NewRequest(http.MethodGet, "/vocab", nil)
	w := httptest.NewRecorder()
	HandleVocabStats(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var stats model.VocabStatsResponse
	assert.NoError(json.Unmarshal(respBody, &stats))
	assert.Equal(8, stats.Size)
	assert.Equal(constants.SpecialTokens, stats.SpecialTokens)
}
