package auditing

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbiddulph/localseo/internal/domain"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const wellFormedPage = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
	<title>Barbearia Central - Cortes no centro da cidade</title>
	<meta name="description" content="Barbearia no centro com agendamento online.">
	<link rel="canonical" href="https://example.com/">
	<meta property="og:title" content="Barbearia Central">
	<meta property="og:description" content="Cortes no centro.">
	<meta property="og:image" content="https://example.com/og.png">
</head>
<body>
	<h1>Barbearia Central</h1>
	<img src="corte.jpg" alt="Corte masculino">
	<form>
		<label for="email">Email</label>
		<input type="text" id="email">
		<button>Agendar</button>
	</form>
	<div class="cookie-banner">Usamos cookies. Aceitar todos?</div>
	<footer>
		<a href="/privacidade">Política de Privacidade</a>
		<a href="/cookies">Política de Cookies</a>
		<a href="/termos">Termos de uso</a>
	</footer>
</body>
</html>`

func TestSummarizePage(t *testing.T) {
	t.Run("Página bem formada extrai todos os sinais", func(t *testing.T) {
		doc := parseHTML(t, wellFormedPage)

		summary := summarizePage("https://example.com/", doc)

		require.NotNil(t, summary.Title)
		assert.Equal(t, "Barbearia Central - Cortes no centro da cidade", *summary.Title)
		require.NotNil(t, summary.Description)
		assert.Equal(t, 1, summary.H1Count)
		require.NotNil(t, summary.Canonical)
		assert.True(t, summary.HasOgTitle)
		assert.True(t, summary.HasOgDescription)
		assert.True(t, summary.HasOgImage)
		assert.Zero(t, summary.MissingImageAltCount)
		assert.Zero(t, summary.UnlabeledFormFieldCount)
		assert.Zero(t, summary.UnlabeledButtonCount)
		assert.True(t, summary.HasPrivacyLink)
		assert.True(t, summary.HasCookieLink)
		assert.True(t, summary.HasTermsLink)
		assert.True(t, summary.HasCookieBannerSignals)
		assert.True(t, summary.HasLangAttribute)
	})

	t.Run("Imagens sem alt e campos sem rótulo são contados", func(t *testing.T) {
		doc := parseHTML(t, `<html><body>
			<img src="a.jpg">
			<img src="b.jpg" alt="">
			<img src="c.jpg" alt="ok">
			<input type="text" name="q">
			<input type="hidden" name="token">
			<button></button>
		</body></html>`)

		summary := summarizePage("https://example.com/", doc)

		assert.Equal(t, 2, summary.MissingImageAltCount)
		assert.Equal(t, 1, summary.UnlabeledFormFieldCount)
		assert.Equal(t, 1, summary.UnlabeledButtonCount)
	})

	t.Run("Campos com aria-label ou label ancestral contam como rotulados", func(t *testing.T) {
		doc := parseHTML(t, `<html><body>
			<input type="text" aria-label="Busca">
			<label>Nome <input type="text"></label>
			<button aria-label="Fechar"></button>
		</body></html>`)

		summary := summarizePage("https://example.com/", doc)

		assert.Zero(t, summary.UnlabeledFormFieldCount)
		assert.Zero(t, summary.UnlabeledButtonCount)
	})
}

func TestBuildFindings(t *testing.T) {
	t.Run("Página bem formada não gera apontamentos", func(t *testing.T) {
		doc := parseHTML(t, wellFormedPage)
		summary := summarizePage("https://example.com/", doc)

		assert.Empty(t, BuildFindings(summary))
	})

	t.Run("Página vazia gera apontamentos de todas as categorias", func(t *testing.T) {
		doc := parseHTML(t, `<html><body><p>oi</p></body></html>`)
		summary := summarizePage("https://example.com/", doc)

		findings := BuildFindings(summary)
		assert.NotEmpty(t, findings)

		categories := map[domain.FindingCategory]bool{}
		for _, finding := range findings {
			categories[finding.Category] = true
		}
		assert.True(t, categories[domain.CategorySEO])
		assert.True(t, categories[domain.CategoryPrivacy])
		assert.True(t, categories[domain.CategoryAccessibility])
	})

	t.Run("Título ausente é severidade alta, título curto é média", func(t *testing.T) {
		missing := BuildFindings(domain.PageSummary{})
		assert.Equal(t, "Página sem tag <title>", missing[0].Issue)
		assert.Equal(t, domain.SeverityHigh, missing[0].Severity)

		short := "Curto"
		shortFindings := BuildFindings(domain.PageSummary{Title: &short})
		assert.Equal(t, "Título fora do tamanho recomendado", shortFindings[0].Issue)
		assert.Equal(t, domain.SeverityMedium, shortFindings[0].Severity)
	})

	t.Run("Página sem h1 é severidade alta, múltiplos h1 é baixa", func(t *testing.T) {
		title := "Um título com tamanho perfeitamente adequado"

		noH1 := BuildFindings(domain.PageSummary{Title: &title})
		var foundNoH1 bool
		for _, finding := range noH1 {
			if finding.Issue == "Página sem <h1>" {
				foundNoH1 = true
				assert.Equal(t, domain.SeverityHigh, finding.Severity)
			}
		}
		assert.True(t, foundNoH1)

		multiple := BuildFindings(domain.PageSummary{Title: &title, H1Count: 3})
		var foundMultiple bool
		for _, finding := range multiple {
			if finding.Issue == "Página com múltiplos <h1>" {
				foundMultiple = true
				assert.Equal(t, domain.SeverityLow, finding.Severity)
			}
		}
		assert.True(t, foundMultiple)
	})

	t.Run("Link de cookies e banner de consentimento são regras separadas", func(t *testing.T) {
		// Banner presente mas sem link de cookies: só a regra do link dispara
		withBanner := BuildFindings(domain.PageSummary{HasCookieBannerSignals: true})
		var issues []string
		for _, finding := range withBanner {
			if finding.Category == domain.CategoryPrivacy {
				issues = append(issues, finding.Issue)
			}
		}
		assert.Contains(t, issues, "Link para política de cookies não encontrado")
		assert.NotContains(t, issues, "Nenhum banner de consentimento de cookies detectado")

		// Link presente mas sem banner: só a regra do banner dispara
		withLink := BuildFindings(domain.PageSummary{HasCookieLink: true})
		issues = issues[:0]
		for _, finding := range withLink {
			if finding.Category == domain.CategoryPrivacy {
				issues = append(issues, finding.Issue)
			}
		}
		assert.Contains(t, issues, "Nenhum banner de consentimento de cookies detectado")
		assert.NotContains(t, issues, "Link para política de cookies não encontrado")
	})

	t.Run("Apontamentos saem em ordem fixa SEO, acessibilidade e privacidade", func(t *testing.T) {
		summary := domain.PageSummary{MissingImageAltCount: 1}

		findings := BuildFindings(summary)

		lastSEO, firstA11y, lastA11y, firstPrivacy := -1, -1, -1, -1
		for i, finding := range findings {
			switch finding.Category {
			case domain.CategorySEO:
				lastSEO = i
			case domain.CategoryAccessibility:
				if firstA11y == -1 {
					firstA11y = i
				}
				lastA11y = i
			case domain.CategoryPrivacy:
				if firstPrivacy == -1 {
					firstPrivacy = i
				}
			}
		}

		assert.Less(t, lastSEO, firstA11y)
		assert.Less(t, lastA11y, firstPrivacy)
	})
}
