package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShareSlugFromPath(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		expected string
	}{
		{
			name:     "Página pública de relatório extrai o slug",
			method:   http.MethodGet,
			path:     "/v1/reports/aB3xY9kQ2mN1",
			expected: "aB3xY9kQ2mN1",
		},
		{
			name:     "Listagem de relatórios não tem slug",
			method:   http.MethodGet,
			path:     "/v1/reports",
			expected: "",
		},
		{
			name:     "Remoção de relatório não é acesso público",
			method:   http.MethodDelete,
			path:     "/v1/reports/report-1",
			expected: "",
		},
		{
			name:     "Caminho com segmentos extras não tem slug",
			method:   http.MethodGet,
			path:     "/v1/reports/abc/extra",
			expected: "",
		},
		{
			name:     "Outras rotas não têm slug",
			method:   http.MethodGet,
			path:     "/v1/cohorts",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shareSlugFromPath(tt.method, tt.path))
		})
	}
}
