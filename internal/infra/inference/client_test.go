package inference

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/tennis-playability/internal/domain/playability"
)

var samplePayload = playability.Payload{Outlook: "sunny", Temperature: "hot", Humidity: "normal", Wind: "weak"}

func TestPredictSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/infer/live/v1", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("accept"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, map[string]string{
			"outlook": "sunny", "temperature": "hot", "humidity": "normal", "wind": "weak",
		}, body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"description":"Great day for tennis","can_play":true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/infer/live/v1", 0, newTestLogger())
	got, err := client.Predict(context.Background(), samplePayload)
	require.NoError(t, err)
	require.Equal(t, playability.Prediction{Description: "Great day for tennis", CanPlay: true}, got)
}

func TestPredictCannotPlay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"description":"Too windy","can_play":false}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, 0, newTestLogger()).Predict(context.Background(), samplePayload)
	require.NoError(t, err)
	require.Equal(t, "Too windy", got.Description)
	require.False(t, got.CanPlay)
}

func TestPredictValidationDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["body","outlook"],"msg":"invalid outlook","type":"value_error"}]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, newTestLogger()).Predict(context.Background(), samplePayload)
	var reqErr *playability.RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, http.StatusUnprocessableEntity, reqErr.Status)
	require.Equal(t, "invalid outlook", reqErr.Message)
	require.Equal(t, "Returned with 422 error: invalid outlook", err.Error())
}

func TestPredictOpaqueErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("model not loaded\n"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, newTestLogger()).Predict(context.Background(), samplePayload)
	var reqErr *playability.RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Equal(t, http.StatusInternalServerError, reqErr.Status)
	require.Equal(t, "model not loaded", reqErr.Message)
}

func TestPredictEmptyErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, newTestLogger()).Predict(context.Background(), samplePayload)
	require.EqualError(t, err, "Returned with 404 error: Not Found")
}

func TestPredictMalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, newTestLogger()).Predict(context.Background(), samplePayload)
	var reqErr *playability.RequestError
	require.ErrorAs(t, err, &reqErr)
	require.True(t, reqErr.Transport())
	require.Contains(t, err.Error(), "decode inference response")
}

func TestPredictMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"description":"ok"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, newTestLogger()).Predict(context.Background(), samplePayload)
	require.Error(t, err)
}

func TestPredictConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	_, err := NewClient(endpoint, 0, newTestLogger()).Predict(context.Background(), samplePayload)
	var reqErr *playability.RequestError
	require.ErrorAs(t, err, &reqErr)
	require.True(t, reqErr.Transport())
	require.Contains(t, err.Error(), "inference request failed")
}

func TestErrorMessageStringDetail(t *testing.T) {
	require.Equal(t, "Model v9 not found", errorMessage(http.StatusNotFound, []byte(`{"detail":"Model v9 not found"}`)))
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
