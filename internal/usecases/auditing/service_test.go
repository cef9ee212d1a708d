package auditing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	base, err := url.Parse("https://example.com/sobre/")
	require.NoError(t, err)

	tests := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{
			name:     "Link relativo é resolvido contra a base",
			raw:      "/contato",
			expected: "https://example.com/contato",
		},
		{
			name:     "Fragmento é descartado",
			raw:      "https://example.com/precos#planos",
			expected: "https://example.com/precos",
		},
		{
			name:     "Barra final é removida",
			raw:      "https://example.com/blog/",
			expected: "https://example.com/blog",
		},
		{
			name:    "Outro host é rejeitado",
			raw:     "https://outro.com/pagina",
			wantErr: true,
		},
		{
			name:    "Rotas de API são rejeitadas",
			raw:     "/api/v1/users",
			wantErr: true,
		},
		{
			name:    "mailto é rejeitado",
			raw:     "mailto:contato@example.com",
			wantErr: true,
		},
		{
			name:    "javascript é rejeitado",
			raw:     "javascript:void(0)",
			wantErr: true,
		},
		{
			name:    "Link vazio é rejeitado",
			raw:     "  ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, err := normalizeURL(tt.raw, base)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, normalized)
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		fallback  int
		hardMax   int
		expected  int
	}{
		{"Valor pedido dentro do teto é mantido", 10, 20, 50, 10},
		{"Zero usa o padrão configurado", 0, 20, 50, 20},
		{"Negativo usa o padrão configurado", -5, 20, 50, 20},
		{"Acima do teto é rebaixado ao teto", 100, 20, 50, 50},
		{"Padrão inválido cai no teto", 0, 0, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clamp(tt.requested, tt.fallback, tt.hardMax))
		})
	}
}
