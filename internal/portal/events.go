package portal

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"

	"scoutsie/internal/config"
	"scoutsie/internal/course"
)

// Scraper drives the events UI and collects training-course listings.
type Scraper struct {
	b         *Browser
	cfg       *config.PortalConfig
	extractor *course.Extractor
	logger    *slog.Logger
}

// NewScraper wraps a logged-out browser session.
func NewScraper(b *Browser, cfg *config.Config, logger *slog.Logger) *Scraper {
	return &Scraper{
		b:         b,
		cfg:       &cfg.Portal,
		extractor: course.NewExtractor(cfg.Portal.CourseSelectors, cfg.Portal.CourseKeywords, logger),
		logger:    logger.With("component", "events_scraper"),
	}
}

// Run executes the whole flow: login, navigate to the events list, filter to
// training events, then walk the pagination for each configured year.
// Filter failures degrade to an unfiltered view with a warning; navigation
// failures are terminal and leave a screenshot behind.
func (s *Scraper) Run(ctx context.Context) ([]course.Course, error) {
	if err := s.b.Login(ctx); err != nil {
		return nil, err
	}

	if err := s.b.ClickByText(s.cfg.ManageGroupLabel); err != nil {
		s.b.Screenshot("no_manage_group")
		return nil, &NavError{Step: s.cfg.ManageGroupLabel, Err: err}
	}
	s.b.settle()

	if err := s.b.ClickByText(s.cfg.EventsLabel); err != nil {
		s.b.Screenshot("no_events")
		return nil, &NavError{Step: s.cfg.EventsLabel, Err: err}
	}
	s.b.settle()

	if err := s.applyTypeFilter(); err != nil {
		s.logger.Warn("event-type filter not applied, proceeding unfiltered", "error", err)
		s.b.Screenshot("no_type_filter")
	}

	var all []course.Course
	for _, year := range s.cfg.Years {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		s.logger.Info("processing year", "year", year)
		if err := s.selectYear(year); err != nil {
			s.logger.Warn("year filter not applied, scraping current view", "year", year, "error", err)
			s.b.Screenshot(fmt.Sprintf("no_year_input_%d", year))
		}

		found, err := s.walkPages(ctx, year)
		all = append(all, found...)
		if err != nil {
			return all, err
		}
	}

	deduped := course.Dedup(all)
	s.logger.Info("scrape complete", "raw", len(all), "unique", len(deduped))
	return deduped, nil
}

// applyTypeFilter selects the training event type. The control is rendered
// as radio inputs with framework-generated markup, so three strategies are
// tried: radio attributes, label text, then any labelled control.
func (s *Scraper) applyTypeFilter() error {
	// Strategy 1: radio inputs whose value/id/name mentions a filter label.
	radios, err := s.b.page.Elements(`input[type="radio"]`)
	if err == nil {
		for _, radio := range radios {
			if !visible(radio) {
				continue
			}
			ident := attrText(radio, "value") + " " + attrText(radio, "id") + " " + attrText(radio, "name")
			if s.matchesFilter(ident) {
				if err := s.b.click(radio); err != nil {
					continue
				}
				s.logger.Info("type filter applied via radio", "ident", strings.TrimSpace(ident))
				s.b.settle()
				return nil
			}
		}
	}

	// Strategy 2: clickable labels.
	labels, err := s.b.page.Elements("label")
	if err == nil {
		for _, label := range labels {
			if !visible(label) {
				continue
			}
			text, err := label.Text()
			if err != nil || !s.matchesFilter(text) {
				continue
			}
			if err := s.b.click(label); err != nil {
				continue
			}
			s.logger.Info("type filter applied via label", "label", strings.TrimSpace(text))
			s.b.settle()
			return nil
		}
	}

	// Strategy 3: any text-matched control.
	for _, want := range s.cfg.FilterLabels {
		el, err := s.b.FindByText(want)
		if err != nil {
			continue
		}
		text, _ := el.Text()
		if s.excluded(text) {
			continue
		}
		if err := s.b.click(el); err != nil {
			continue
		}
		s.logger.Info("type filter applied via text match", "label", want)
		s.b.settle()
		return nil
	}

	return ErrFilterNotFound
}

func (s *Scraper) matchesFilter(text string) bool {
	if s.excluded(text) {
		return false
	}
	lower := strings.ToLower(text)
	for _, want := range s.cfg.FilterLabels {
		if strings.Contains(lower, strings.ToLower(want)) {
			return true
		}
	}
	return false
}

func (s *Scraper) excluded(text string) bool {
	lower := strings.ToLower(text)
	for _, skip := range s.cfg.FilterExcludeLabels {
		if strings.Contains(lower, strings.ToLower(skip)) {
			return true
		}
	}
	return false
}

// selectYear drives the Event Year numeric input. If the field already holds
// the target it is just re-triggered; a numeric value is stepped with arrow
// keys; anything else is replaced outright.
func (s *Scraper) selectYear(year int) error {
	time.Sleep(2 * time.Second) // let the filter bar render

	el := s.findYearInput()
	if el == nil {
		return ErrYearInputNotFound
	}

	current := propText(el, "value")
	target := strconv.Itoa(year)

	switch {
	case current == target:
		s.logger.Debug("year already selected", "year", year)
		if err := el.Type(input.Enter); err != nil {
			return fmt.Errorf("trigger year filter: %w", err)
		}

	case isNumeric(current):
		from, _ := strconv.Atoi(current)
		if err := s.stepYear(el, from, year); err != nil {
			return err
		}

	default:
		if err := s.b.TypeInto(el, target); err != nil {
			return fmt.Errorf("enter year: %w", err)
		}
		if err := el.Type(input.Enter); err != nil {
			return fmt.Errorf("trigger year filter: %w", err)
		}
	}

	s.logger.Info("year filter applied", "year", year)
	s.b.settle()
	return nil
}

// stepYear moves a numeric input with arrow keys, one year per press.
func (s *Scraper) stepYear(el *rod.Element, from, to int) error {
	key := input.ArrowUp
	if to < from {
		key = input.ArrowDown
	}
	steps := from - to
	if steps < 0 {
		steps = -steps
	}
	for i := 0; i < steps; i++ {
		if err := el.Type(key); err != nil {
			return fmt.Errorf("step year: %w", err)
		}
		time.Sleep(100 * time.Millisecond)
	}
	return el.Type(input.Enter)
}

// yearInputSelectors are tried in order before the broad input scan.
var yearInputSelectors = []string{
	`input[aria-label*="year" i]`,
	`input[placeholder*="year" i]`,
	`input[name*="year" i]`,
	`input[id*="year" i]`,
	`input[type="number"]`,
}

// findYearInput locates the Event Year field: targeted selectors first, then
// any visible input that plausibly holds a year.
func (s *Scraper) findYearInput() *rod.Element {
	for _, sel := range yearInputSelectors {
		els, err := s.b.page.Elements(sel)
		if err != nil {
			continue
		}
		for _, el := range els {
			if !visible(el) {
				continue
			}
			// Bare number inputs qualify only when they hold a year.
			if sel == `input[type="number"]` && !looksLikeYear(propText(el, "value")) {
				continue
			}
			s.logger.Debug("year input found", "selector", sel)
			return el
		}
	}

	els, err := s.b.page.Elements("input")
	if err != nil {
		return nil
	}
	for _, el := range els {
		if !visible(el) {
			continue
		}
		attrs := strings.ToLower(strings.Join([]string{
			attrText(el, "placeholder"),
			attrText(el, "aria-label"),
			attrText(el, "title"),
			attrText(el, "id"),
			attrText(el, "name"),
		}, " "))
		value := propText(el, "value")
		if strings.Contains(attrs, "year") || looksLikeYear(value) {
			s.logger.Debug("year input found via scan", "attrs", strings.TrimSpace(attrs), "value", value)
			return el
		}
	}
	return nil
}

// walkPages extracts courses page by page until the next-page control runs
// out or MaxPages is hit.
func (s *Scraper) walkPages(ctx context.Context, year int) ([]course.Course, error) {
	var all []course.Course

	for pageNum := 1; pageNum <= s.cfg.MaxPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		html, err := s.b.page.HTML()
		if err != nil {
			return all, &NavError{Step: fmt.Sprintf("snapshot page %d", pageNum), Err: err}
		}

		found := s.extractor.FromHTML(html)
		s.logger.Info("page extracted", "year", year, "page", pageNum, "courses", len(found))
		all = append(all, found...)

		next, last := s.findNext()
		if next == nil {
			if !last {
				s.logger.Debug("no next-page control", "year", year, "page", pageNum)
			}
			break
		}

		if err := s.b.click(next); err != nil {
			s.logger.Warn("next page click failed, stopping", "page", pageNum, "error", err)
			s.b.Screenshot(fmt.Sprintf("next_failed_%d_p%d", year, pageNum))
			break
		}
		s.b.settle()
	}

	return all, nil
}

// findNext locates the next-page control. Selector candidates from config
// run first; a disabled match means the last page was reached. Text-matched
// buttons and links are the fallback.
func (s *Scraper) findNext() (el *rod.Element, lastPage bool) {
	for _, sel := range s.cfg.NextSelectors {
		els, err := s.b.page.Elements(sel)
		if err != nil {
			continue
		}
		for _, candidate := range els {
			if !visible(candidate) {
				continue
			}
			if disabled(candidate) {
				s.logger.Debug("next control disabled, last page", "selector", sel)
				return nil, true
			}
			return candidate, false
		}
	}

	// Fallback: anything that reads like "next".
	els, err := s.b.page.Elements("button, a")
	if err != nil {
		return nil, false
	}
	for _, candidate := range els {
		if !visible(candidate) {
			continue
		}
		text, err := candidate.Text()
		if err != nil {
			continue
		}
		text = strings.ToLower(strings.TrimSpace(text))
		switch {
		case text == ">" || text == "»" || text == "→":
		case strings.Contains(text, "next"):
		default:
			continue
		}
		if disabled(candidate) {
			return nil, true
		}
		return candidate, false
	}

	return nil, false
}

func attrText(el *rod.Element, name string) string {
	v, err := el.Attribute(name)
	if err != nil || v == nil {
		return ""
	}
	return *v
}

func propText(el *rod.Element, name string) string {
	v, err := el.Property(name)
	if err != nil {
		return ""
	}
	return v.Str()
}

func disabled(el *rod.Element) bool {
	v, err := el.Property("disabled")
	return err == nil && v.Bool()
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func looksLikeYear(s string) bool {
	if len(s) != 4 || !isNumeric(s) {
		return false
	}
	n, _ := strconv.Atoi(s)
	return n >= 2020 && n <= 2030
}
