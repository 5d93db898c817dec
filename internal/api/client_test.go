package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_DecodesSuccessEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"status":200,"data":{"status":"ok","service":"medxscan","version":"1.2.0"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := Get[Health](context.Background(), c, "/api/v1/health")
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "ok", resp.Data.Status)
	assert.Equal(t, "1.2.0", resp.Data.Version)
	assert.Empty(t, resp.Error)
}

func TestDo_NonOKUsesServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"status":400,"data":null,"error":"image field is required"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := Get[Health](context.Background(), c, "/api/v1/health")
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, "image field is required", se.Message)
}

func TestDo_NonOKWithoutBodyFallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := Get[Health](context.Background(), c, "/api/v1/health")

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Status)
	assert.Equal(t, "request failed with status 502", se.Message)
}

func TestDo_TimeoutIsNormalizedAndNeverRetried(t *testing.T) {
	var calls int32
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewWithTimeout(srv.URL, 50*time.Millisecond)
	_, err := Get[Health](context.Background(), c, "/api/v1/health")

	require.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "timed-out request must not be retried")
}

func TestDo_ConnectionErrorWrapsUnavailable(t *testing.T) {
	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL)
	_, err := Get[Health](context.Background(), c, "/api/v1/health")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestFileURL(t *testing.T) {
	c := New("http://localhost:5000/")

	tests := []struct {
		in   string
		want string
	}{
		{"/static/heatmap.png", "http://localhost:5000/static/heatmap.png"},
		{"static/heatmap.png", "http://localhost:5000/static/heatmap.png"},
		{"http://cdn.example.com/r.pdf", "http://cdn.example.com/r.pdf"},
		{"https://cdn.example.com/r.pdf", "https://cdn.example.com/r.pdf"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, c.FileURL(tc.in), tc.in)
	}
}

func TestPost_SendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"status":200,"data":{"question":"q","answer":"a","source":"model","timestamp":"t"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := Post[ChatAnswer](context.Background(), c, "/api/v1/chat/ask", map[string]string{"question": "q"})
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, "a", resp.Data.Answer)
}
