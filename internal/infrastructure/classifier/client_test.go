package classifier

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triago/internal/application/triage"
	"triago/internal/shared/config"
	"triago/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testRequest() *triage.Request {
	return &triage.Request{
		TraceID: "trace_client01",
		Ticket:  triage.TicketInput{ID: "1", Title: "VPN drops", Description: "Disconnects hourly."},
		KB: []triage.KBItem{
			{ID: "kb-vpn-drops", Title: "VPN connection drops", Body: "Reset the adapter.", Tags: []string{"tech"}},
		},
	}
}

func TestHTTPClient_Triage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/triage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "trace_client01", r.Header.Get("X-Trace-Id"))

		var req triage.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "trace_client01", req.TraceID)
		assert.Len(t, req.KB, 1)

		json.NewEncoder(w).Encode(triage.Response{
			PredictedCategory: "tech",
			DraftReply:        "Reset the adapter and reconnect.",
			Citations:         []string{"kb-vpn-drops"},
			Confidence:        0.82,
			ModelInfo:         triage.ModelInfo{Provider: "openai", Model: "gpt-4o-mini", PromptVersion: "triage-v3"},
			StepLogs:          []triage.StepLog{{Action: "RETRIEVAL_DONE", Meta: map[string]interface{}{"hits": float64(1)}}},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(&config.ClassifierConfig{BaseURL: server.URL, TimeoutSeconds: 5}, testLogger())
	resp, err := client.Triage(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "tech", resp.PredictedCategory)
	assert.InDelta(t, 0.82, resp.Confidence, 1e-9)
	assert.Equal(t, []string{"kb-vpn-drops"}, resp.Citations)
	require.Len(t, resp.StepLogs, 1)
	assert.Equal(t, "RETRIEVAL_DONE", resp.StepLogs[0].Action)
}

func TestHTTPClient_Triage_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewHTTPClient(&config.ClassifierConfig{BaseURL: server.URL, TimeoutSeconds: 5}, testLogger())
	_, err := client.Triage(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestHTTPClient_Triage_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewHTTPClient(&config.ClassifierConfig{BaseURL: server.URL, TimeoutSeconds: 5}, testLogger())
	_, err := client.Triage(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestHTTPClient_Triage_RejectsOutOfRangeConfidence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(triage.Response{
			PredictedCategory: "tech",
			Confidence:        3.2,
		})
	}))
	defer server.Close()

	client := NewHTTPClient(&config.ClassifierConfig{BaseURL: server.URL, TimeoutSeconds: 5}, testLogger())
	_, err := client.Triage(context.Background(), testRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestHTTPClient_Triage_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewHTTPClient(&config.ClassifierConfig{BaseURL: server.URL, TimeoutSeconds: 5}, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Triage(ctx, testRequest())
	require.Error(t, err)
}
