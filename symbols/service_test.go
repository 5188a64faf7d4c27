package symbols

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-currency-converter/domain"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestService_Symbols(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.True(t, strings.HasSuffix(req.URL.String(), "/symbols"))
		response := `{
			"success": true,
			"symbols": {
				"USD": {"description": "United States Dollar", "code": "USD"},
				"EUR": {"description": "Euro", "code": "EUR"},
				"JPY": {"code": "JPY"},
				"GBP": {"description": 12},
				"BAD": "not an object",
				"NUL": null,
				"lower": {"description": "Lower case"}
			}
		}`
		_, _ = rw.Write([]byte(response))
	}))
	defer server.Close()

	s := NewService(server.URL, "", time.Second)

	listing, err := s.Symbols(context.Background())
	require.NoError(t, err)

	registry := NewRegistry(listing)
	assert.Equal(t, 4, registry.Len())
	assert.True(t, registry.Contains("USD"))
	assert.True(t, registry.Contains("JPY"))
	assert.True(t, registry.Contains("GBP"))

	d, ok := registry.Describe("EUR")
	assert.True(t, ok)
	assert.Equal(t, "Euro", d)

	d, ok = registry.Describe("JPY")
	assert.True(t, ok)
	assert.Equal(t, "", d)

	assert.Equal(t, []domain.Currency{"BAD", "NUL", "lower"}, registry.Skipped())
}

func TestService_SymbolsAccessKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/symbols", req.URL.Path)
		assert.Equal(t, "secret", req.URL.Query().Get("access_key"))
		_, _ = rw.Write([]byte(`{"symbols": {"USD": {"description": "United States Dollar"}}}`))
	}))
	defer server.Close()

	_, err := NewService(server.URL+"/", "secret", time.Second).Symbols(context.Background())
	assert.NoError(t, err)
}

func TestService_SymbolsAccessKeyEscaped(t *testing.T) {
	key := "a&b=c#d+e f"
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/symbols", req.URL.Path)
		assert.Equal(t, key, req.URL.Query().Get("access_key"))
		assert.Len(t, req.URL.Query(), 1)
		_, _ = rw.Write([]byte(`{"symbols": {"USD": {"description": "United States Dollar"}}}`))
	}))
	defer server.Close()

	listing, err := NewService(server.URL, key, time.Second).Symbols(context.Background())
	assert.NoError(t, err)
	assert.Len(t, listing.Symbols, 1)
}

func TestService_SymbolsUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"missing symbols", http.StatusOK, `{"success": false}`},
		{"empty symbols", http.StatusOK, `{"symbols": {}}`},
		{"symbols not an object", http.StatusOK, `{"symbols": ["USD"]}`},
		{"not json", http.StatusOK, `<html></html>`},
		{"all malformed", http.StatusOK, `{"symbols": {"USD": 1, "EUR": "x"}}`},
		{"server error", http.StatusInternalServerError, `{"symbols": {"USD": {"description": "United States Dollar"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
				rw.WriteHeader(tt.status)
				_, _ = rw.Write([]byte(tt.payload))
			}))
			defer server.Close()

			registry, err := Load(context.Background(), NewService(server.URL, "", time.Second))
			assert.Nil(t, registry)
			assert.ErrorIs(t, err, domain.ErrRegistryUnavailable)
		})
	}
}

func TestService_SymbolsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {}))
	url := server.URL
	server.Close()

	registry, err := Load(context.Background(), NewService(url, "", time.Second))
	assert.Nil(t, registry)
	assert.ErrorIs(t, err, domain.ErrRegistryUnavailable)
}

func TestService_SymbolsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		time.Sleep(50 * time.Millisecond)
		_, _ = rw.Write([]byte(`{"symbols": {"USD": {"description": "United States Dollar"}}}`))
	}))
	defer server.Close()

	_, err := NewService(server.URL, "", 1*time.Millisecond).Symbols(context.Background())
	assert.ErrorIs(t, err, domain.ErrRegistryUnavailable)
}
