package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGateway_NotConfigured(t *testing.T) {
	g := &HTTPGateway{}
	_, err := g.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestHTTPGateway_Complete(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"PV": 50, "Wind": 30, "Battery": 20}`}},
			},
		})
	}))
	defer srv.Close()

	g := &HTTPGateway{URL: srv.URL, APIKey: "test-key", Model: "test-model"}
	out, err := g.Complete(context.Background(), "analyze this curve")
	require.NoError(t, err)
	assert.Equal(t, `{"PV": 50, "Wind": 30, "Battery": 20}`, out)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotBody["model"])

	msgs, ok := gotBody["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, msgs, 2)
	user := msgs[1].(map[string]interface{})
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "analyze this curve", user["content"])
}

func TestHTTPGateway_PaymentRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	g := &HTTPGateway{URL: srv.URL, APIKey: "k"}
	_, err := g.Complete(context.Background(), "p")
	assert.ErrorIs(t, err, ErrPaymentRequired)
}

func TestHTTPGateway_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := &HTTPGateway{URL: srv.URL, APIKey: "k"}
	_, err := g.Complete(context.Background(), "p")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestHTTPGateway_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	g := &HTTPGateway{URL: srv.URL, APIKey: "k"}
	_, err := g.Complete(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestHTTPGateway_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	g := &HTTPGateway{URL: srv.URL, APIKey: "k"}
	_, err := g.Complete(context.Background(), "p")
	assert.Error(t, err)
}
