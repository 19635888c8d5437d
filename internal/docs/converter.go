package docs

import (
	"fmt"
	"strings"

	docsapi "google.golang.org/api/docs/v1"
)

// headingLevels maps Docs named paragraph styles to Markdown heading levels.
var headingLevels = map[string]int{
	StyleHeading1: 1,
	StyleHeading2: 2,
	StyleHeading3: 3,
	StyleHeading4: 4,
	StyleHeading5: 5,
	StyleHeading6: 6,
}

// DocumentToMarkdown renders a Google Doc as Markdown.
// Supports both legacy documents (doc.Body) and tabbed documents (doc.Tabs).
func DocumentToMarkdown(doc *docsapi.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	r := &mdRenderer{lists: doc.Lists}

	if doc.Title != "" {
		r.out.WriteString("# ")
		r.out.WriteString(doc.Title)
		r.out.WriteString("\n\n")
	}

	if len(doc.Tabs) > 0 {
		r.renderTabs(doc.Tabs, 2)
	} else if doc.Body != nil {
		r.renderBody(doc.Body)
	}

	return r.out.String(), nil
}

// mdRenderer accumulates Markdown output for one document. lists carries
// the document's list definitions so numbered lists render with ordered
// markers instead of dashes.
type mdRenderer struct {
	out   strings.Builder
	lists map[string]docsapi.List
}

func (r *mdRenderer) renderTabs(tabs []*docsapi.Tab, headingLevel int) {
	if headingLevel > 6 {
		headingLevel = 6
	}
	for i, tab := range tabs {
		title := ""
		if tab.TabProperties != nil {
			title = tab.TabProperties.Title
		}
		if title == "" {
			title = fmt.Sprintf("Tab %d", i+1)
		}
		// The first top-level tab of a single-tab doc needs no header.
		if headingLevel > 2 || len(tabs) > 1 || i > 0 || tab.TabProperties != nil && tab.TabProperties.Title != "" {
			r.out.WriteString(strings.Repeat("#", headingLevel))
			r.out.WriteString(" ")
			r.out.WriteString(title)
			r.out.WriteString("\n\n")
		}

		if tab.DocumentTab != nil && tab.DocumentTab.Body != nil {
			r.renderBody(tab.DocumentTab.Body)
		}
		if len(tab.ChildTabs) > 0 {
			r.renderTabs(tab.ChildTabs, headingLevel+1)
		}
	}
}

func (r *mdRenderer) renderBody(body *docsapi.Body) {
	for _, element := range body.Content {
		switch {
		case element.Paragraph != nil:
			r.renderParagraph(element.Paragraph)
		case element.Table != nil:
			r.renderTable(element.Table)
		case element.SectionBreak != nil && r.out.Len() > 0:
			r.out.WriteString("---\n\n")
		}
	}
}

func (r *mdRenderer) renderParagraph(para *docsapi.Paragraph) {
	if para == nil || len(para.Elements) == 0 {
		return
	}

	level := 0
	if para.ParagraphStyle != nil {
		level = headingLevels[para.ParagraphStyle.NamedStyleType]
	}

	isList := para.Bullet != nil
	if level > 0 {
		r.out.WriteString(strings.Repeat("#", level))
		r.out.WriteString(" ")
	} else if isList {
		depth := int(para.Bullet.NestingLevel)
		r.out.WriteString(strings.Repeat("  ", depth))
		if r.isOrdered(para.Bullet.ListId, depth) {
			r.out.WriteString("1. ")
		} else {
			r.out.WriteString("- ")
		}
	}

	for _, elem := range para.Elements {
		switch {
		case elem.TextRun != nil:
			r.renderTextRun(elem.TextRun)
		case elem.InlineObjectElement != nil:
			r.out.WriteString("[inline object]")
		}
	}

	if !strings.HasSuffix(r.out.String(), "\n") {
		r.out.WriteString("\n")
	}
	if !isList {
		r.out.WriteString("\n")
	}
}

// isOrdered reports whether the list renders ordered glyphs at the
// given nesting level.
func (r *mdRenderer) isOrdered(listID string, depth int) bool {
	list, ok := r.lists[listID]
	if !ok || list.ListProperties == nil {
		return false
	}
	levels := list.ListProperties.NestingLevels
	if depth >= len(levels) || levels[depth] == nil {
		return false
	}
	switch levels[depth].GlyphType {
	case "DECIMAL", "ZERO_DECIMAL", "UPPER_ALPHA", "ALPHA", "UPPER_ROMAN", "ROMAN":
		return true
	}
	return false
}

func (r *mdRenderer) renderTextRun(run *docsapi.TextRun) {
	content := run.Content
	if content == "" {
		return
	}

	style := run.TextStyle
	if style == nil {
		r.out.WriteString(content)
		return
	}

	if style.Link != nil && style.Link.Url != "" {
		r.out.WriteString("[")
		r.out.WriteString(strings.TrimSpace(content))
		r.out.WriteString("](")
		r.out.WriteString(style.Link.Url)
		r.out.WriteString(")")
		return
	}

	if style.WeightedFontFamily != nil && strings.Contains(style.WeightedFontFamily.FontFamily, "Courier") {
		r.out.WriteString("`")
		r.out.WriteString(strings.TrimRight(content, "\n"))
		r.out.WriteString("`")
		if strings.HasSuffix(content, "\n") {
			r.out.WriteString("\n")
		}
		return
	}

	// Emphasis markers cannot wrap the trailing newline.
	trailing := ""
	if strings.HasSuffix(content, "\n") {
		content = strings.TrimRight(content, "\n")
		trailing = "\n"
	}

	marker := ""
	switch {
	case style.Bold && style.Italic:
		marker = "***"
	case style.Bold:
		marker = "**"
	case style.Italic:
		marker = "*"
	}

	r.out.WriteString(marker)
	r.out.WriteString(content)
	r.out.WriteString(marker)
	r.out.WriteString(trailing)
}

func (r *mdRenderer) renderTable(table *docsapi.Table) {
	if table == nil || len(table.TableRows) == 0 {
		return
	}

	for rowIndex, row := range table.TableRows {
		r.out.WriteString("|")
		for _, cell := range row.TableCells {
			r.out.WriteString(" ")
			r.out.WriteString(cellText(cell))
			r.out.WriteString(" |")
		}
		r.out.WriteString("\n")

		if rowIndex == 0 {
			r.out.WriteString("|")
			for range row.TableCells {
				r.out.WriteString(" --- |")
			}
			r.out.WriteString("\n")
		}
	}
	r.out.WriteString("\n")
}

func cellText(cell *docsapi.TableCell) string {
	var sb strings.Builder
	for _, element := range cell.Content {
		if element.Paragraph == nil {
			continue
		}
		for _, elem := range element.Paragraph.Elements {
			if elem.TextRun != nil {
				sb.WriteString(strings.ReplaceAll(strings.TrimSpace(elem.TextRun.Content), "\n", " "))
			}
		}
	}
	return sb.String()
}

// DocumentToPlainText extracts the raw text of a Google Doc without any
// Markdown markers. Supports both legacy and tabbed documents.
func DocumentToPlainText(doc *docsapi.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	var text strings.Builder

	if doc.Title != "" {
		text.WriteString(doc.Title)
		text.WriteString("\n\n")
	}

	if len(doc.Tabs) > 0 {
		plainTabs(&text, doc.Tabs, 0)
	} else if doc.Body != nil {
		plainBody(&text, doc.Body)
	}

	return text.String(), nil
}

func plainTabs(text *strings.Builder, tabs []*docsapi.Tab, level int) {
	for i, tab := range tabs {
		title := ""
		if tab.TabProperties != nil {
			title = tab.TabProperties.Title
		}
		if title == "" {
			title = fmt.Sprintf("Tab %d", i+1)
		}
		if level > 0 || len(tabs) > 1 || i > 0 {
			text.WriteString(strings.Repeat("  ", level))
			text.WriteString("=== ")
			text.WriteString(title)
			text.WriteString(" ===\n\n")
		}

		if tab.DocumentTab != nil && tab.DocumentTab.Body != nil {
			plainBody(text, tab.DocumentTab.Body)
		}
		if len(tab.ChildTabs) > 0 {
			plainTabs(text, tab.ChildTabs, level+1)
		}
		text.WriteString("\n")
	}
}

func plainBody(text *strings.Builder, body *docsapi.Body) {
	for _, element := range body.Content {
		switch {
		case element.Paragraph != nil:
			plainParagraph(text, element.Paragraph)
		case element.Table != nil:
			for _, row := range element.Table.TableRows {
				for _, cell := range row.TableCells {
					for _, cellElement := range cell.Content {
						if cellElement.Paragraph != nil {
							plainParagraph(text, cellElement.Paragraph)
						}
					}
					text.WriteString("\t")
				}
				text.WriteString("\n")
			}
		}
	}
}

func plainParagraph(text *strings.Builder, para *docsapi.Paragraph) {
	for _, elem := range para.Elements {
		if elem.TextRun != nil {
			text.WriteString(elem.TextRun.Content)
		}
	}
}
