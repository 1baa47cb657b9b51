package portal

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// textSearchTags is the ladder of tags that may carry a clickable label in
// the portal: links, buttons, and the div/span/li/td/th soup the framework
// renders tabs into.
var textSearchTags = []string{"a", "button", "div", "span", "li", "td", "th"}

// xpathForms are the lookup strategies tried for one tag, loosest last.
func xpathForms(tag, text string) []string {
	return []string{
		fmt.Sprintf("//%s[contains(text(), '%s')]", tag, text),
		fmt.Sprintf("//%s[contains(., '%s')]", tag, text),
		fmt.Sprintf("//%s[normalize-space() = '%s']", tag, text),
		fmt.Sprintf("//%s[contains(normalize-space(), '%s')]", tag, text),
		fmt.Sprintf("//%s[text() = '%s']", tag, text),
		fmt.Sprintf("//%s[text() = '%s']", tag, strings.ToUpper(text)),
	}
}

// FindByText locates a clickable element carrying the given label. Each
// tag/XPath combination gets a slice of the navigation timeout; a broad scan
// of anchors, buttons, and tabs is the last resort.
func (b *Browser) FindByText(text string) (*rod.Element, error) {
	b.dismissOverlay()

	per := b.cfg.Portal.NavTimeout / time.Duration(len(textSearchTags)*6)
	if per < 200*time.Millisecond {
		per = 200 * time.Millisecond
	}

	for _, tag := range textSearchTags {
		for _, xp := range xpathForms(tag, text) {
			el, err := b.page.Timeout(per).ElementX(xp)
			if err != nil {
				continue
			}
			if visible(el) {
				b.logger.Debug("element found", "text", text, "tag", tag)
				return el, nil
			}
		}
	}

	// Fallback: scan everything that looks clickable.
	els, err := b.page.Elements("a, button, [role='tab']")
	if err == nil {
		upper := strings.ToUpper(text)
		for _, el := range els {
			if !visible(el) {
				continue
			}
			t, err := el.Text()
			if err != nil {
				continue
			}
			if strings.Contains(strings.ToUpper(strings.TrimSpace(t)), upper) {
				b.logger.Debug("element found via text scan", "text", text, "matched", strings.TrimSpace(t))
				return el, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrElementNotFound, text)
}

// ClickByText finds a labelled control and clicks it, falling back to a JS
// click when the native click is intercepted.
func (b *Browser) ClickByText(text string) error {
	el, err := b.FindByText(text)
	if err != nil {
		return err
	}
	return b.click(el)
}

// click scrolls an element into view and clicks it, with a JS fallback.
func (b *Browser) click(el *rod.Element) error {
	if err := el.ScrollIntoView(); err != nil {
		b.logger.Debug("scroll into view failed", "error", err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err == nil {
		return nil
	}
	// Native click intercepted (overlay, animation), so click via JS.
	if _, err := el.Eval(`() => this.click()`); err != nil {
		return fmt.Errorf("click element: %w", err)
	}
	return nil
}

// dismissOverlay waits briefly for a loading scrim to clear and clicks it
// away if it does not.
func (b *Browser) dismissOverlay() {
	sel := b.cfg.Portal.OverlaySelector
	if sel == "" {
		return
	}

	deadline := time.Now().Add(b.cfg.Portal.NavTimeout)
	for time.Now().Before(deadline) {
		els, err := b.page.Elements(sel)
		if err != nil || len(els) == 0 {
			return
		}
		blocked := false
		for _, el := range els {
			if visible(el) {
				blocked = true
				break
			}
		}
		if !blocked {
			return
		}
		time.Sleep(500 * time.Millisecond)
	}

	// Scrim never cleared, try to click it away.
	if _, err := b.page.Eval(fmt.Sprintf(`() => document.querySelector(%q)?.click()`, sel)); err == nil {
		time.Sleep(time.Second)
	}
}

// TypeInto replaces the content of an input field.
func (b *Browser) TypeInto(el *rod.Element, text string) error {
	if err := el.SelectAllText(); err != nil {
		b.logger.Debug("select all failed", "error", err)
	}
	return el.Input(text)
}

func visible(el *rod.Element) bool {
	v, err := el.Visible()
	return err == nil && v
}
