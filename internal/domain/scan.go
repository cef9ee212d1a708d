package domain

type FindingCategory string

const (
	CategorySEO           FindingCategory = "SEO"
	CategoryPrivacy       FindingCategory = "GDPR & Privacy"
	CategoryAccessibility FindingCategory = "Accessibility"
)

// Finding é um problema apontado pelo ruleset de auditoria de páginas
type Finding struct {
	Category       FindingCategory `json:"category"`
	Severity       AlertSeverity   `json:"severity"`
	Issue          string          `json:"issue"`
	Recommendation string          `json:"recommendation"`
}

// PageSummary resume os sinais de SEO, acessibilidade e privacidade
// extraídos do DOM de uma página
type PageSummary struct {
	URL                     string  `json:"url"`
	Title                   *string `json:"title"`
	Description             *string `json:"description"`
	H1Count                 int     `json:"h1_count"`
	Canonical               *string `json:"canonical"`
	HasRobotsMeta           bool    `json:"has_robots_meta"`
	HasOgTitle              bool    `json:"has_og_title"`
	HasOgDescription        bool    `json:"has_og_description"`
	HasOgImage              bool    `json:"has_og_image"`
	MissingImageAltCount    int     `json:"missing_image_alt_count"`
	UnlabeledFormFieldCount int     `json:"unlabeled_form_field_count"`
	UnlabeledButtonCount    int     `json:"unlabeled_button_count"`
	HasPrivacyLink          bool    `json:"has_privacy_link"`
	HasCookieLink           bool    `json:"has_cookie_link"`
	HasTermsLink            bool    `json:"has_terms_link"`
	HasCookieBannerSignals  bool    `json:"has_cookie_banner_signals"`
	HasLangAttribute        bool    `json:"has_lang_attribute"`
}

type ScanPageResult struct {
	Summary  PageSummary `json:"summary"`
	Findings []Finding   `json:"findings"`
}

// DiscoveryResult descreve o resultado do crawl de descoberta de páginas
type DiscoveryResult struct {
	PagesFound    int      `json:"pages_found"`
	MaxDepthFound int      `json:"max_depth_found"`
	URLs          []string `json:"urls"`
	SampleURLs    []string `json:"sample_urls"`
}

type ScanMode string

const (
	ScanModeSingle   ScanMode = "single"
	ScanModeFull     ScanMode = "full"
	ScanModeDiscover ScanMode = "discover"
)
