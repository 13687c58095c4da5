package generator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withServices(t *testing.T, urls []string) {
	t.Helper()
	old := ipServices
	ipServices = urls
	t.Cleanup(func() { ipServices = old })
}

func TestDetectPublicIPFirstServiceWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("203.0.113.9\n"))
	}))
	defer srv.Close()
	withServices(t, []string{srv.URL})

	ip, err := DetectPublicIP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("203.0.113.9"), ip)
}

func TestDetectPublicIPFailsOver(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an ip</html>"))
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("2001:db8::7"))
	}))
	defer good.Close()
	withServices(t, []string{bad.URL, good.URL})

	ip, err := DetectPublicIP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("2001:db8::7"), ip)
}

func TestDetectPublicIPSkipsErrorStatus(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("192.0.2.33"))
	}))
	defer good.Close()
	withServices(t, []string{bad.URL, good.URL})

	ip, err := DetectPublicIP(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.33", ip.String())
}

func TestDetectPublicIPAllFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("nope"))
	}))
	defer srv.Close()
	withServices(t, []string{srv.URL, "http://127.0.0.1:1"})

	_, err := DetectPublicIPTimeout(context.Background(), 500*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllServicesFailed)
}
