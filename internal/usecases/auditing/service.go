// Package auditing executa a auditoria de sites: extração de sinais de SEO,
// privacidade e acessibilidade do DOM, e a descoberta de páginas internas
package auditing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/jbiddulph/localseo/internal/config"
	"github.com/jbiddulph/localseo/internal/domain"
)

const (
	// HardMaxPages é o teto absoluto de páginas por auditoria
	HardMaxPages = 50
	// HardMaxDepth é a profundidade máxima do crawl de descoberta
	HardMaxDepth = 3
	// discoverySampleSize é quantas URLs vão na amostra do resultado
	discoverySampleSize = 10
)

var (
	ErrInvalidURL      = errors.New("URL inválida")
	ErrUnsupportedMode = errors.New("modo de auditoria inválido")
)

type ScanRequest struct {
	URL      string          `json:"url"`
	Mode     domain.ScanMode `json:"mode"`
	MaxPages int             `json:"max_pages"`
	MaxDepth int             `json:"max_depth"`
}

type ScanResponse struct {
	Mode      domain.ScanMode         `json:"mode"`
	Pages     []domain.ScanPageResult `json:"pages,omitempty"`
	Discovery *domain.DiscoveryResult `json:"discovery,omitempty"`
}

type ScanService interface {
	Scan(ctx context.Context, req ScanRequest) (*ScanResponse, error)
}

type Service struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewService(cfg *config.Config) ScanService {
	timeout := time.Duration(cfg.Scan.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Scan roteia a auditoria conforme o modo: single analisa só a URL; discover
// apenas mapeia páginas internas; full descobre e analisa cada página.
func (s *Service) Scan(ctx context.Context, req ScanRequest) (*ScanResponse, error) {
	root, err := normalizeURL(req.URL, nil)
	if err != nil {
		return nil, ErrInvalidURL
	}

	maxPages := clamp(req.MaxPages, s.cfg.Scan.MaxPages, HardMaxPages)
	maxDepth := clamp(req.MaxDepth, s.cfg.Scan.MaxDepth, HardMaxDepth)

	switch req.Mode {
	case domain.ScanModeSingle, "":
		page, err := s.scanPage(ctx, root)
		if err != nil {
			return nil, err
		}
		return &ScanResponse{
			Mode:  domain.ScanModeSingle,
			Pages: []domain.ScanPageResult{*page},
		}, nil

	case domain.ScanModeDiscover:
		discovery, _, err := s.discover(ctx, root, maxPages, maxDepth)
		if err != nil {
			return nil, err
		}
		return &ScanResponse{
			Mode:      domain.ScanModeDiscover,
			Discovery: discovery,
		}, nil

	case domain.ScanModeFull:
		discovery, urls, err := s.discover(ctx, root, maxPages, maxDepth)
		if err != nil {
			return nil, err
		}

		pages := make([]domain.ScanPageResult, 0, len(urls))
		for _, pageURL := range urls {
			page, err := s.scanPage(ctx, pageURL)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"url":   pageURL,
					"error": err.Error(),
				}).Warn("auditing: página pulada por erro de análise")
				continue
			}
			pages = append(pages, *page)
		}

		return &ScanResponse{
			Mode:      domain.ScanModeFull,
			Pages:     pages,
			Discovery: discovery,
		}, nil

	default:
		return nil, ErrUnsupportedMode
	}
}

func (s *Service) scanPage(ctx context.Context, pageURL string) (*domain.ScanPageResult, error) {
	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	summary := summarizePage(pageURL, doc)
	return &domain.ScanPageResult{
		Summary:  summary,
		Findings: BuildFindings(summary),
	}, nil
}

// discover percorre os links internos em largura a partir da raiz,
// respeitando os limites de páginas e profundidade
func (s *Service) discover(ctx context.Context, root string, maxPages, maxDepth int) (*domain.DiscoveryResult, []string, error) {
	rootURL, err := url.Parse(root)
	if err != nil {
		return nil, nil, ErrInvalidURL
	}

	type queued struct {
		url   string
		depth int
	}

	visited := map[string]bool{root: true}
	order := []string{root}
	queue := []queued{{url: root, depth: 0}}
	maxDepthFound := 0

	for len(queue) > 0 && len(order) < maxPages {
		item := queue[0]
		queue = queue[1:]

		doc, err := s.fetchDocument(ctx, item.url)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"url":   item.url,
				"error": err.Error(),
			}).Debug("auditing: página inacessível durante a descoberta")
			continue
		}

		if item.depth >= maxDepth {
			continue
		}

		doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, _ := sel.Attr("href")
			normalized, err := normalizeURL(href, rootURL)
			if err != nil || visited[normalized] {
				return true
			}

			visited[normalized] = true
			order = append(order, normalized)
			queue = append(queue, queued{url: normalized, depth: item.depth + 1})

			if item.depth+1 > maxDepthFound {
				maxDepthFound = item.depth + 1
			}

			return len(order) < maxPages
		})
	}

	sample := order
	if len(sample) > discoverySampleSize {
		sample = sample[:discoverySampleSize]
	}

	return &domain.DiscoveryResult{
		PagesFound:    len(order),
		MaxDepthFound: maxDepthFound,
		URLs:          order,
		SampleURLs:    sample,
	}, order, nil
}

func (s *Service) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "localseo-audit/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status inesperado: %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// normalizeURL resolve o link contra a base, remove fragmento e rejeita o
// que estiver fora da origem da raiz (ou rotas de API)
func normalizeURL(raw string, base *url.URL) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "mailto:") || strings.HasPrefix(raw, "tel:") || strings.HasPrefix(raw, "javascript:") {
		return "", ErrInvalidURL
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidURL
	}

	if base != nil {
		parsed = base.ResolveReference(parsed)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", ErrInvalidURL
	}

	if base != nil && parsed.Host != base.Host {
		return "", ErrInvalidURL
	}

	if strings.HasPrefix(parsed.Path, "/api") {
		return "", ErrInvalidURL
	}

	parsed.Fragment = ""
	normalized := strings.TrimSuffix(parsed.String(), "/")

	return normalized, nil
}

func clamp(requested, fallback, hardMax int) int {
	value := requested
	if value <= 0 {
		value = fallback
	}
	if value <= 0 || value > hardMax {
		value = hardMax
	}
	return value
}
