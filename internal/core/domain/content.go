package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ProcessedContent is the output of the extraction stage: a tagged variant of
// the three shapes extractors produce. Exactly one of the variants is set.
//
//   - Text: a single flat text stream ({"text": ...})
//   - Pages: a per-page listing ({"pages": [...]}), page order significant
//   - Content: a per-section listing ({"content": [...]})
type ProcessedContent struct {
	DocumentID string            `json:"document_id,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`

	Text    string   `json:"text,omitempty"`
	Pages   []Page   `json:"pages,omitempty"`
	Content []string `json:"content,omitempty"`
}

// Page is one page of extracted text.
type Page struct {
	PageNumber int    `json:"page_number,omitempty"`
	Text       string `json:"combined_text"`
}

// Sections returns the content as an ordered sequence of texts, each fed
// individually to the chunker. Order follows the source listing.
func (c *ProcessedContent) Sections() []string {
	switch {
	case c.Text != "":
		return []string{c.Text}
	case len(c.Pages) > 0:
		sections := make([]string, len(c.Pages))
		for i, p := range c.Pages {
			sections[i] = p.Text
		}
		return sections
	default:
		return c.Content
	}
}

// rawContent mirrors the JSON shapes produced by extractors and by the
// legacy per-filetype processors. Variant fields are kept raw so malformed
// listings fail with ErrFormat instead of a decode panic.
type rawContent struct {
	DocumentID string            `json:"document_id"`
	Metadata   map[string]string `json:"metadata"`
	Text       *string           `json:"text"`
	Pages      []json.RawMessage `json:"pages"`
	Content    []json.RawMessage `json:"content"`
}

// ParseProcessedContent decodes an extraction output document. A payload
// with neither a flat text field nor a recognized page/section listing
// fails with ErrFormat.
//
// Section listing normalization is deterministic: string entries are taken
// verbatim; list entries are flattened by joining their elements with single
// spaces (non-string scalars are stringified); any other entry shape is an
// ErrFormat.
func ParseProcessedContent(data []byte) (*ProcessedContent, error) {
	var raw rawContent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	pc := &ProcessedContent{
		DocumentID: raw.DocumentID,
		Metadata:   raw.Metadata,
	}

	switch {
	case raw.Text != nil:
		pc.Text = *raw.Text

	case raw.Pages != nil:
		pages, err := parsePages(raw.Pages)
		if err != nil {
			return nil, err
		}
		pc.Pages = pages

	case raw.Content != nil:
		sections, err := parseSections(raw.Content)
		if err != nil {
			return nil, err
		}
		pc.Content = sections

	default:
		return nil, fmt.Errorf("%w: no text, pages, or content field", ErrFormat)
	}

	return pc, nil
}

func parsePages(entries []json.RawMessage) ([]Page, error) {
	pages := make([]Page, 0, len(entries))
	for i, entry := range entries {
		// Bare string page
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			pages = append(pages, Page{PageNumber: i + 1, Text: s})
			continue
		}

		// Object page: "combined_text" (PDF processor) or "text" (DOCX processor)
		var obj struct {
			PageNumber int     `json:"page_number"`
			Page       int     `json:"page"`
			Combined   *string `json:"combined_text"`
			Text       *string `json:"text"`
		}
		if err := json.Unmarshal(entry, &obj); err != nil {
			return nil, fmt.Errorf("%w: page %d is neither string nor object", ErrFormat, i)
		}

		page := Page{PageNumber: obj.PageNumber}
		if page.PageNumber == 0 {
			page.PageNumber = obj.Page
		}
		if page.PageNumber == 0 {
			page.PageNumber = i + 1
		}

		switch {
		case obj.Combined != nil:
			page.Text = *obj.Combined
		case obj.Text != nil:
			page.Text = *obj.Text
		default:
			return nil, fmt.Errorf("%w: page %d has no text field", ErrFormat, i)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func parseSections(entries []json.RawMessage) ([]string, error) {
	sections := make([]string, 0, len(entries))
	for i, entry := range entries {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			sections = append(sections, s)
			continue
		}

		var list []any
		if err := json.Unmarshal(entry, &list); err != nil {
			return nil, fmt.Errorf("%w: content entry %d is neither string nor list", ErrFormat, i)
		}

		parts := make([]string, 0, len(list))
		for _, item := range list {
			if str, ok := item.(string); ok {
				parts = append(parts, str)
			} else {
				parts = append(parts, fmt.Sprint(item))
			}
		}
		sections = append(sections, strings.Join(parts, " "))
	}
	return sections, nil
}
