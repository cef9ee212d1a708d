package placesclient

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jbiddulph/localseo/internal/config"
)

func newTestClient(baseURL string) Client {
	return NewClient(&config.Config{
		Google: config.Google{
			MapsBaseURL: baseURL,
			APIKey:      "test-key",
		},
	})
}

func TestNearbySearch_StatusHandling(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError string
		expectItems int
	}{
		{
			name:        "Status OK devolve os resultados na ordem do provedor",
			body:        `{"status":"OK","results":[{"place_id":"a","name":"Loja A"},{"place_id":"b","name":"Loja B"}]}`,
			expectItems: 2,
		},
		{
			name:        "ZERO_RESULTS é tratado como erro do provedor",
			body:        `{"status":"ZERO_RESULTS","results":[]}`,
			expectError: "ZERO_RESULTS",
		},
		{
			name:        "Status de negação inclui a mensagem de erro do provedor",
			body:        `{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid."}`,
			expectError: "The provided API key is invalid.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			places, err := client.NearbySearch(51.5, -0.14, 1500, "barbearia")
			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, places, tt.expectItems)
		})
	}
}
