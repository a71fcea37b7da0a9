package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/profilehub/backend/pkg/logger"
)

func TestHandleErrWritesGenericResponse(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	defer logger.Replace(zap.New(core))()

	h := RequestID(HandleErr(func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("secret detail")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, ErrorBody, rr.Body.String())
	require.NotContains(t, rr.Body.String(), "secret")
	require.Equal(t, 1, logs.FilterMessage("Internal Server Error").Len())
	entry := logs.All()[0]
	require.Equal(t, rr.Header().Get(RequestIDHeader), entry.ContextMap()["id"])
}

func TestHandleErrNilIsNoop(t *testing.T) {
	h := HandleErr(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusAccepted)
		return nil
	})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusAccepted, rr.Code)
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, ErrorBody, rr.Body.String())
}

func TestRequestIDKeepsClientValue(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, "abc-123", seen)
	require.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}
