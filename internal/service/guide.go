package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wayplan/wayplan/internal/config"
	"github.com/wayplan/wayplan/internal/domain"
)

// GuideService fetches a destination page and extracts a plain-text
// summary plus section highlights for the frontend sidebar.
type GuideService struct {
	httpClient *http.Client
	baseURL    string
	cache      *guideCache
}

func NewGuideService() *GuideService {
	return &GuideService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://en.wikivoyage.org/wiki",
		cache:      newGuideCache(config.GuideCacheTTL),
	}
}

type DestinationGuide struct {
	Place      string   `json:"place"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
}

func (s *GuideService) GetGuide(ctx context.Context, place string) (*DestinationGuide, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, domain.ErrGuideNotFound
	}

	if cached := s.cache.get(place); cached != nil {
		return cached, nil
	}

	pageURL := fmt.Sprintf("%s/%s", s.baseURL, url.PathEscape(strings.ReplaceAll(place, " ", "_")))
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch guide: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrGuideNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("guide page returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse guide page: %w", err)
	}

	guide := &DestinationGuide{Place: place}

	// First substantial paragraph of the article body.
	doc.Find("#mw-content-text p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := collapseWhitespace(sel.Text())
		if len(text) < 80 {
			return true
		}
		guide.Summary = text
		return false
	})

	doc.Find("#mw-content-text h2").Each(func(_ int, sel *goquery.Selection) {
		if h := collapseWhitespace(sel.Text()); h != "" {
			guide.Highlights = append(guide.Highlights, h)
		}
	})

	if guide.Summary == "" && len(guide.Highlights) == 0 {
		return nil, domain.ErrGuideNotFound
	}

	s.cache.set(place, guide)
	return guide, nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
