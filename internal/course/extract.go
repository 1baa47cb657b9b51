package course

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Blocks shorter than this are noise (menus, headers) even when a keyword
// matches.
const minCandidateLen = 100

// Extractor pulls course listings out of rendered page snapshots. It tries a
// ladder of CSS container selectors first and falls back to an XPath keyword
// scan, because the source markup is unversioned and changes without notice.
type Extractor struct {
	selectors []string
	keywords  []string
	logger    *slog.Logger
}

// NewExtractor creates an extractor with the configured selector ladder and
// keyword gate.
func NewExtractor(selectors, keywords []string, logger *slog.Logger) *Extractor {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return &Extractor{
		selectors: selectors,
		keywords:  lowered,
		logger:    logger.With("component", "course_extractor"),
	}
}

// FromHTML extracts course records from one page of HTML.
func (e *Extractor) FromHTML(pageHTML string) []Course {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		e.logger.Warn("page snapshot not parseable", "error", err)
		return nil
	}

	var out []Course
	for _, sel := range e.selectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) < minCandidateLen || !e.hasKeyword(text) {
				return
			}
			if c := ParseBlock(text); c.Title != "" {
				out = append(out, c)
			}
		})
		if len(out) > 0 {
			e.logger.Debug("courses matched", "selector", sel, "count", len(out))
			break
		}
	}

	if len(out) == 0 {
		out = e.keywordScan(pageHTML)
	}

	return out
}

// keywordScan walks text nodes for course keywords and parses the enclosing
// container. Last resort when no container selector matched.
func (e *Extractor) keywordScan(pageHTML string) []Course {
	root, err := htmlquery.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	var out []Course
	seen := make(map[*html.Node]bool)
	for _, node := range htmlquery.Find(root, "//text()") {
		if !e.hasKeyword(node.Data) {
			continue
		}
		container := enclosingBlock(node)
		if container == nil || seen[container] {
			continue
		}
		seen[container] = true

		text := strings.TrimSpace(htmlquery.InnerText(container))
		// A real listing always carries a status line and a date range.
		if len(text) < minCandidateLen || !strings.Contains(text, "Status:") || !strings.Contains(text, "From") {
			continue
		}
		if c := ParseBlock(text); c.Title != "" {
			out = append(out, c)
		}
	}

	if len(out) > 0 {
		e.logger.Debug("courses matched via keyword scan", "count", len(out))
	}
	return out
}

func (e *Extractor) hasKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range e.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// enclosingBlock climbs from a text node to the nearest element that could
// hold a whole listing.
func enclosingBlock(node *html.Node) *html.Node {
	parent := node.Parent
	if parent == nil {
		return nil
	}
	if grand := parent.Parent; grand != nil && grand.Type == html.ElementNode {
		return grand
	}
	if parent.Type == html.ElementNode {
		return parent
	}
	return nil
}
