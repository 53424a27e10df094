package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	rpdf "rsc.io/pdf"
)

var deadlineLabelHints = []string{
	"response deadline", "offers due", "proposals due", "quotes due",
	"closing date", "due date", "submission deadline", "no later than",
}

var dateSnippetRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d{1,2}/\d{1,2}/20\d{2}\b`),
	regexp.MustCompile(`(?i)\b20\d{2}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+20\d{2}\b`),
	regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2},?\s+20\d{2}\b`),
}

// extractPDFText pulls plain text out of a PDF attachment. The parser can
// panic on malformed files, so that is converted into an error.
func extractPDFText(content []byte) (text string, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("pdf parser panic: %v", recovered)
			text = ""
		}
	}()

	reader, err := rpdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		for _, fragment := range page.Content().Text {
			builder.WriteString(fragment.S)
			builder.WriteString(" ")
		}
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

// parseDeadlineCandidatesFromText finds date tokens near deadline-like labels
// and returns them as ISO strings, earliest first.
func parseDeadlineCandidatesFromText(text string) []string {
	seen := make(map[string]bool)
	var found []time.Time

	for _, expr := range dateSnippetRegexes {
		for _, loc := range expr.FindAllStringIndex(text, -1) {
			token := strings.TrimSpace(text[loc[0]:loc[1]])
			parsed := parseTimestamp(token)
			if parsed == nil {
				continue
			}

			start := loc[0] - 80
			if start < 0 {
				start = 0
			}
			snippet := strings.ToLower(text[start:loc[1]])

			labeled := false
			for _, hint := range deadlineLabelHints {
				if strings.Contains(snippet, hint) {
					labeled = true
					break
				}
			}
			if !labeled {
				continue
			}

			iso := parsed.UTC().Format(time.RFC3339)
			if !seen[iso] {
				seen[iso] = true
				found = append(found, parsed.UTC())
			}
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Before(found[j]) })

	result := make([]string, 0, len(found))
	for _, t := range found {
		result = append(result, t.Format(time.RFC3339))
	}
	return result
}

// ExtractDeadlinesFromPDF fetches a PDF attachment and scans it for labeled
// deadline dates.
func ExtractDeadlinesFromPDF(ctx context.Context, fetcher Fetcher, pdfURL string) ([]string, error) {
	doc, err := fetcher.Fetch(ctx, pdfURL)
	if err != nil {
		return nil, err
	}
	defer doc.Body.Close()

	content, err := io.ReadAll(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("pdf read failed: %w", err)
	}

	text, err := extractPDFText(content)
	if err != nil {
		return nil, fmt.Errorf("pdf text extraction failed: %w", err)
	}

	return parseDeadlineCandidatesFromText(text), nil
}
