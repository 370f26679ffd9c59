// Package scraper implements lead discovery on gelbeseiten.de.
package scraper

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/AdReachMedia/LeadGen-CRM/internal/models"
)

const (
	defaultBaseURL = "https://www.gelbeseiten.de"
	requestTimeout = 15 * time.Second
	maxPages       = 20
)

// GelbeSeiten scrapes business listings from the gelbeseiten.de directory.
type GelbeSeiten struct {
	baseURL string
	client  *http.Client
}

// NewGelbeSeiten constructs a scraper. baseURL overrides the production
// endpoint; pass "" for the default.
func NewGelbeSeiten(baseURL string) *GelbeSeiten {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GelbeSeiten{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// CampaignLabel returns the campaign name stamped on every result of a
// search, so imports of the same search land in one campaign.
func CampaignLabel(query, location string) string {
	return fmt.Sprintf("GelbeSeiten: %s (%s)", query, location)
}

func slug(s string) string {
	return url.PathEscape(strings.ToLower(strings.ReplaceAll(s, " ", "-")))
}

// Search walks the numbered result pages for query in location and returns up
// to max candidate leads. Duplicate cards are dropped by content fingerprint.
// Stops early on an empty page or when the cap is reached.
func (g *GelbeSeiten) Search(ctx context.Context, query, location string, max int) ([]models.Candidate, error) {
	if query == "" {
		return nil, models.NewValidationError("query", "must not be empty")
	}
	if location == "" {
		return nil, models.NewValidationError("location", "must not be empty")
	}
	if max <= 0 {
		return nil, nil
	}

	campaign := CampaignLabel(query, location)
	searchURL := fmt.Sprintf("%s/branchen/%s/%s", g.baseURL, slug(query), slug(location))

	var results []models.Candidate
	seen := map[[sha256.Size]byte]struct{}{}

	for page := 1; page <= maxPages && len(results) < max; page++ {
		pageURL := searchURL
		if page > 1 {
			pageURL = fmt.Sprintf("%s?seite=%d", searchURL, page)
		}
		cards, err := g.fetchPage(ctx, pageURL)
		if err != nil {
			return nil, err
		}
		if len(cards) == 0 {
			break
		}

		added := 0
		for _, card := range cards {
			if len(results) >= max {
				break
			}
			html, err := goquery.OuterHtml(card)
			if err != nil {
				continue
			}
			fp := sha256.Sum256([]byte(html))
			if _, ok := seen[fp]; ok {
				continue
			}
			seen[fp] = struct{}{}

			c, ok := parseCard(card, query, campaign)
			if !ok {
				continue
			}
			results = append(results, c)
			added++
		}
		// A page of nothing but duplicates means the site is repeating
		// itself; walking further will not find new listings.
		if added == 0 {
			break
		}
	}
	return results, nil
}

func (g *GelbeSeiten) fetchPage(ctx context.Context, pageURL string) ([]*goquery.Selection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Search: unexpected status %d from %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Search: %w", err)
	}

	var cards []*goquery.Selection
	doc.Find("article.mod-Treffer").Each(func(_ int, s *goquery.Selection) {
		cards = append(cards, s)
	})
	return cards, nil
}

// parseCard extracts one candidate from a result card. Cards without a name
// are skipped.
func parseCard(card *goquery.Selection, industry, campaign string) (models.Candidate, bool) {
	name := strings.TrimSpace(card.Find("h2").First().Text())
	if name == "" {
		return models.Candidate{}, false
	}

	c := models.Candidate{
		Name:     name,
		Industry: optText(industry),
		Campaign: optText(campaign),
	}
	c.Address = optText(strings.TrimSpace(card.Find(".mod-AdresseKompakt__adress-text").First().Text()))
	c.Phone = optText(strings.TrimSpace(card.Find(".mod-TelefonnummerKompakt__phoneNumber").First().Text()))

	if encoded, ok := card.Find(".mod-WebseiteKompakt__text").First().Attr("data-webseitelink"); ok {
		if decoded, err := base64.StdEncoding.DecodeString(encoded); err == nil {
			c.Website = optText(string(decoded))
		}
	}
	return c, true
}

func optText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
