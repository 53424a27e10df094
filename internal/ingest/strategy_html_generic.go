package ingest

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// HTMLGenericStrategy crawls selector-configured listing pages on state and
// local procurement portals. Each listing row becomes a RawNotice; detail
// fields the page doesn't expose are filled by LLM extraction in the
// pipeline.
type HTMLGenericStrategy struct{}

func (s *HTMLGenericStrategy) Run(ctx context.Context, config SourceConfig, pipeline *Pipeline) (IngestionStats, error) {
	stats := IngestionStats{}

	if config.Selectors.Container == "" || config.Selectors.Link == "" {
		return stats, fmt.Errorf("source %q: html_generic requires container and link selectors", config.ID)
	}

	maxPages := config.MaxPages
	if maxPages == 0 {
		maxPages = 1
	}

	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		colly.MaxBodySize(10*1024*1024),
		colly.MaxDepth(2),
	)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 2,
		Delay:       time.Second,
		RandomDelay: 500 * time.Millisecond,
	})
	c.SetRequestTimeout(30 * time.Second)
	if config.Fetch.TimeoutSeconds > 0 {
		c.SetRequestTimeout(time.Duration(config.Fetch.TimeoutSeconds) * time.Second)
	}

	pagesVisited := 0
	seen := make(map[string]bool)

	c.OnHTML(config.Selectors.Container, func(e *colly.HTMLElement) {
		link := e.ChildAttr(config.Selectors.Link, "href")
		if link == "" {
			return
		}
		fullURL := e.Request.AbsoluteURL(link)
		if fullURL == "" || seen[fullURL] {
			return
		}
		seen[fullURL] = true

		title := strings.TrimSpace(e.ChildText(config.Selectors.Title))
		if title == "" {
			title = strings.TrimSpace(e.ChildText(config.Selectors.Link))
		}
		if title == "" {
			return
		}

		raw := RawNotice{
			Title:        title,
			Description:  strings.TrimSpace(e.ChildText(config.Selectors.Content)),
			ExternalURL:  fullURL,
			SourceID:     stableSourceID(fullURL),
			SourceDomain: extractDomain(fullURL),
		}

		stats.TotalFound++
		if err := pipeline.SaveRaw(ctx, raw); err != nil {
			log.Printf("[HTMLGeneric] Failed to save %q: %v", title, err)
			stats.Errors++
		} else {
			stats.TotalSaved++
		}
	})

	if config.Selectors.NextPage != "" {
		c.OnHTML(config.Selectors.NextPage, func(e *colly.HTMLElement) {
			if pagesVisited >= maxPages {
				return
			}
			next := e.Request.AbsoluteURL(e.Attr("href"))
			if next != "" {
				pagesVisited++
				e.Request.Visit(next)
			}
		})
	}

	c.OnError(func(r *colly.Response, err error) {
		log.Printf("[HTMLGeneric] Fetch error for %s: %v", r.Request.URL, err)
		stats.Errors++
	})

	for _, seed := range config.Seeds {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		pagesVisited = 1
		if err := c.Visit(seed); err != nil {
			log.Printf("[HTMLGeneric] Visit failed for %s: %v", seed, err)
			stats.Errors++
		}
	}
	c.Wait()

	return stats, nil
}

// stableSourceID derives a deterministic source ID from a notice URL so
// re-crawls upsert instead of duplicating.
func stableSourceID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawQuery = ""
	return strings.TrimSuffix(u.String(), "/")
}
