package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserAgent_Platform(t *testing.T) {
	tests := []struct {
		name     string
		ua       string
		platform string
		device   string
	}{
		{"android chrome", "Mozilla/5.0 (Linux; Android 12; SM-A525F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Mobile Safari/537.36", "android", "mobile"},
		{"iphone safari", "Mozilla/5.0 (iPhone; CPU iPhone OS 16_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.4 Mobile/15E148 Safari/604.1", "ios", "mobile"},
		{"okhttp client", "okhttp/4.11.0", "android", "mobile"},
		{"ios native client", "SalesOps/112 CFNetwork/1404.0.5 Darwin/22.3.0", "ios", "mobile"},
		{"desktop", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", "web", "desktop"},
		{"empty", "", "web", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseUserAgent(tt.ua)
			assert.Equal(t, tt.platform, info.Platform)
			assert.Equal(t, tt.device, info.DeviceType)
		})
	}
}

func TestGetRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"public x-real-ip", map[string]string{"X-Real-IP": "49.37.10.5"}, "49.37.10.5"},
		{"first public forwarded hop", map[string]string{"X-Forwarded-For": "10.0.0.4, 49.37.10.6, 172.16.0.1"}, "49.37.10.6"},
		{"all private forwarded", map[string]string{"X-Forwarded-For": "10.0.0.4, 192.168.1.2"}, "10.0.0.4"},
		{"fallback to remote addr", nil, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, GetRealIP(c))
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	assert.True(t, IsPrivateIP("10.1.2.3"))
	assert.True(t, IsPrivateIP("100.64.0.9"))
	assert.False(t, IsPrivateIP("49.37.10.5"))
	assert.False(t, IsPrivateIP("not-an-ip"))
}

func TestGenerateEnvSecrets(t *testing.T) {
	secrets, err := GenerateEnvSecrets()
	require.NoError(t, err)
	require.Len(t, secrets, 2)
	assert.Equal(t, "JWT_SECRET", secrets[0].Key)
	assert.Len(t, secrets[0].Value, 64)
	assert.NotEqual(t, secrets[0].Value, secrets[1].Value)
}
