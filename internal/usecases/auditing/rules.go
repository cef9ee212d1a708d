package auditing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jbiddulph/localseo/internal/domain"
)

const (
	titleMinLength = 15
	titleMaxLength = 65
)

// cookieBannerSignals são trechos de texto que indicam a presença de um
// banner de consentimento de cookies
var cookieBannerSignals = []string{
	"cookie", "cookies", "consent", "consentimento", "aceitar todos",
	"accept all", "gerenciar preferências", "manage preferences",
}

// summarizePage extrai os sinais avaliados pelo ruleset do DOM da página
func summarizePage(pageURL string, doc *goquery.Document) domain.PageSummary {
	summary := domain.PageSummary{URL: pageURL}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		summary.Title = &title
	}

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		desc = strings.TrimSpace(desc)
		if desc != "" {
			summary.Description = &desc
		}
	}

	summary.H1Count = doc.Find("h1").Length()

	if canonical, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		canonical = strings.TrimSpace(canonical)
		if canonical != "" {
			summary.Canonical = &canonical
		}
	}

	summary.HasRobotsMeta = doc.Find(`meta[name="robots"]`).Length() > 0
	summary.HasOgTitle = doc.Find(`meta[property="og:title"]`).Length() > 0
	summary.HasOgDescription = doc.Find(`meta[property="og:description"]`).Length() > 0
	summary.HasOgImage = doc.Find(`meta[property="og:image"]`).Length() > 0

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		alt, ok := sel.Attr("alt")
		if !ok || strings.TrimSpace(alt) == "" {
			summary.MissingImageAltCount++
		}
	})

	doc.Find("input, select, textarea").Each(func(_ int, sel *goquery.Selection) {
		if inputType, _ := sel.Attr("type"); inputType == "hidden" || inputType == "submit" || inputType == "button" {
			return
		}
		if hasAccessibleLabel(doc, sel) {
			return
		}
		summary.UnlabeledFormFieldCount++
	})

	doc.Find("button").Each(func(_ int, sel *goquery.Selection) {
		if strings.TrimSpace(sel.Text()) != "" {
			return
		}
		if label, ok := sel.Attr("aria-label"); ok && strings.TrimSpace(label) != "" {
			return
		}
		summary.UnlabeledButtonCount++
	})

	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		href, _ := sel.Attr("href")
		href = strings.ToLower(href)

		switch {
		case strings.Contains(text, "privacidade") || strings.Contains(text, "privacy") || strings.Contains(href, "privacy") || strings.Contains(href, "privacidade"):
			summary.HasPrivacyLink = true
		case strings.Contains(text, "cookie") || strings.Contains(href, "cookie"):
			summary.HasCookieLink = true
		case strings.Contains(text, "termos") || strings.Contains(text, "terms") || strings.Contains(href, "terms") || strings.Contains(href, "termos"):
			summary.HasTermsLink = true
		}
	})

	bodyText := strings.ToLower(doc.Find("body").Text())
	for _, signal := range cookieBannerSignals {
		if strings.Contains(bodyText, signal) {
			summary.HasCookieBannerSignals = true
			break
		}
	}

	if lang, ok := doc.Find("html").Attr("lang"); ok && strings.TrimSpace(lang) != "" {
		summary.HasLangAttribute = true
	}

	return summary
}

// hasAccessibleLabel verifica se um campo de formulário tem rótulo: label
// associado por for/id, label ancestral, aria-label ou aria-labelledby
func hasAccessibleLabel(doc *goquery.Document, sel *goquery.Selection) bool {
	if label, ok := sel.Attr("aria-label"); ok && strings.TrimSpace(label) != "" {
		return true
	}
	if _, ok := sel.Attr("aria-labelledby"); ok {
		return true
	}

	if id, ok := sel.Attr("id"); ok && id != "" {
		if doc.Find(`label[for="` + id + `"]`).Length() > 0 {
			return true
		}
	}

	return sel.ParentsFiltered("label").Length() > 0
}

// BuildFindings aplica o ruleset sobre o resumo da página. Determinístico:
// o mesmo resumo produz sempre a mesma lista, na mesma ordem.
func BuildFindings(summary domain.PageSummary) []domain.Finding {
	findings := make([]domain.Finding, 0)

	// SEO
	if summary.Title == nil {
		findings = append(findings, domain.Finding{
			Category:       domain.CategorySEO,
			Severity:       domain.SeverityHigh,
			Issue:          "Página sem tag <title>",
			Recommendation: "Adicione um título descritivo entre 15 e 65 caracteres.",
		})
	} else if len(*summary.Title) < titleMinLength || len(*summary.Title) > titleMaxLength {
		findings = append(findings, domain.Finding{
			Category:       domain.CategorySEO,
			Severity:       domain.SeverityMedium,
			Issue:          "Título fora do tamanho recomendado",
			Recommendation: "Mantenha o título entre 15 e 65 caracteres para exibição completa nos resultados de busca.",
		})
	}

	if summary.Description == nil {
		findings = append(findings, domain.Finding{
			Category:       domain.CategorySEO,
			Severity:       domain.SeverityMedium,
			Issue:          "Página sem meta description",
			Recommendation: "Adicione uma meta description resumindo o conteúdo da página.",
		})
	}

	switch {
	case summary.H1Count == 0:
		findings = append(findings, domain.Finding{
			Category:       domain.CategorySEO,
			Severity:       domain.SeverityHigh,
			Issue:          "Página sem <h1>",
			Recommendation: "Use exatamente um <h1> descrevendo o tema principal da página.",
		})
	case summary.H1Count > 1:
		findings = append(findings, domain.Finding{
			Category:       domain.CategorySEO,
			Severity:       domain.SeverityLow,
			Issue:          "Página com múltiplos <h1>",
			Recommendation: "Mantenha um único <h1> e use <h2>/<h3> para os demais níveis.",
		})
	}

	if summary.Canonical == nil {
		findings = append(findings, domain.Finding{
			Category:       domain.CategorySEO,
			Severity:       domain.SeverityLow,
			Issue:          "Página sem link canônico",
			Recommendation: "Adicione <link rel=\"canonical\"> para evitar conteúdo duplicado.",
		})
	}

	if !summary.HasOgTitle || !summary.HasOgDescription || !summary.HasOgImage {
		findings = append(findings, domain.Finding{
			Category:       domain.CategorySEO,
			Severity:       domain.SeverityLow,
			Issue:          "Metadados Open Graph incompletos",
			Recommendation: "Inclua og:title, og:description e og:image para melhorar o compartilhamento em redes sociais.",
		})
	}

	// Accessibility
	if summary.MissingImageAltCount > 0 {
		findings = append(findings, domain.Finding{
			Category:       domain.CategoryAccessibility,
			Severity:       domain.SeverityMedium,
			Issue:          "Imagens sem texto alternativo",
			Recommendation: "Adicione atributos alt descritivos a todas as imagens de conteúdo.",
		})
	}

	if summary.UnlabeledFormFieldCount > 0 {
		findings = append(findings, domain.Finding{
			Category:       domain.CategoryAccessibility,
			Severity:       domain.SeverityHigh,
			Issue:          "Campos de formulário sem rótulo",
			Recommendation: "Associe cada campo a um <label> ou use aria-label.",
		})
	}

	if summary.UnlabeledButtonCount > 0 {
		findings = append(findings, domain.Finding{
			Category:       domain.CategoryAccessibility,
			Severity:       domain.SeverityMedium,
			Issue:          "Botões sem texto acessível",
			Recommendation: "Garanta que todo botão tenha texto visível ou aria-label.",
		})
	}

	if !summary.HasLangAttribute {
		findings = append(findings, domain.Finding{
			Category:       domain.CategoryAccessibility,
			Severity:       domain.SeverityLow,
			Issue:          "Elemento <html> sem atributo lang",
			Recommendation: "Declare o idioma da página com <html lang=\"...\">.",
		})
	}

	// GDPR & Privacy: link de cookies e banner de consentimento são regras
	// separadas, cada uma pode disparar sozinha
	if !summary.HasPrivacyLink {
		findings = append(findings, domain.Finding{
			Category:       domain.CategoryPrivacy,
			Severity:       domain.SeverityHigh,
			Issue:          "Link para política de privacidade não encontrado",
			Recommendation: "Inclua um link visível para a política de privacidade.",
		})
	}

	if !summary.HasCookieLink {
		findings = append(findings, domain.Finding{
			Category:       domain.CategoryPrivacy,
			Severity:       domain.SeverityMedium,
			Issue:          "Link para política de cookies não encontrado",
			Recommendation: "Adicione uma página de política de cookies ou um link de aviso.",
		})
	}

	if !summary.HasTermsLink {
		findings = append(findings, domain.Finding{
			Category:       domain.CategoryPrivacy,
			Severity:       domain.SeverityLow,
			Issue:          "Link para termos de uso não encontrado",
			Recommendation: "Inclua um link para os termos de uso do serviço.",
		})
	}

	if !summary.HasCookieBannerSignals {
		findings = append(findings, domain.Finding{
			Category:       domain.CategoryPrivacy,
			Severity:       domain.SeverityMedium,
			Issue:          "Nenhum banner de consentimento de cookies detectado",
			Recommendation: "Adicione um banner de consentimento caso o site use cookies ou rastreadores.",
		})
	}

	return findings
}
