package sms

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGateway_SendOTP(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send", r.URL.Path)
		got = map[string]string{
			"apikey":      r.URL.Query().Get("apikey"),
			"sender":      r.URL.Query().Get("sender"),
			"template_id": r.URL.Query().Get("template_id"),
			"numbers":     r.URL.Query().Get("numbers"),
			"message":     r.URL.Query().Get("message"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","message_id":"msg-42"}`))
	}))
	defer server.Close()

	gateway := NewHTTPGateway(HTTPConfig{
		BaseURL:    server.URL + "/",
		APIKey:     "key-1",
		SenderID:   "CIRSLS",
		TemplateID: "1107000000000001",
	})

	ref, err := gateway.SendOTP("9876543210", "123456")
	require.NoError(t, err)
	assert.Equal(t, "msg-42", ref)
	assert.Equal(t, "key-1", got["apikey"])
	assert.Equal(t, "CIRSLS", got["sender"])
	assert.Equal(t, "1107000000000001", got["template_id"])
	assert.Equal(t, "919876543210", got["numbers"])
	assert.Contains(t, got["message"], "123456")
}

func TestHTTPGateway_ProviderRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"failure","error":"invalid template"}`))
	}))
	defer server.Close()

	gateway := NewHTTPGateway(HTTPConfig{BaseURL: server.URL})

	_, err := gateway.SendOTP("9876543210", "123456")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid template")
}

func TestHTTPGateway_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	gateway := NewHTTPGateway(HTTPConfig{BaseURL: server.URL})

	_, err := gateway.SendOTP("9876543210", "123456")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestLogGateway(t *testing.T) {
	gateway := NewLogGateway()
	ref, err := gateway.SendOTP("9876543210", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, ref)
	assert.Equal(t, "log", gateway.Name())
}
