package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	docsapi "google.golang.org/api/docs/v1"
)

func textParagraph(style string, runs ...*docsapi.TextRun) *docsapi.StructuralElement {
	para := &docsapi.Paragraph{}
	if style != "" {
		para.ParagraphStyle = &docsapi.ParagraphStyle{NamedStyleType: style}
	}
	for _, run := range runs {
		para.Elements = append(para.Elements, &docsapi.ParagraphElement{TextRun: run})
	}
	return &docsapi.StructuralElement{Paragraph: para}
}

func plainRun(content string) *docsapi.TextRun {
	return &docsapi.TextRun{Content: content}
}

func styledRun(content string, style *docsapi.TextStyle) *docsapi.TextRun {
	return &docsapi.TextRun{Content: content, TextStyle: style}
}

func TestDocumentToMarkdownNil(t *testing.T) {
	_, err := DocumentToMarkdown(nil)
	assert.Error(t, err)

	_, err = DocumentToPlainText(nil)
	assert.Error(t, err)
}

func TestDocumentToMarkdownTitleAndHeadings(t *testing.T) {
	doc := &docsapi.Document{
		Title: "My Document",
		Body: &docsapi.Body{Content: []*docsapi.StructuralElement{
			textParagraph(StyleHeading1, plainRun("Section\n")),
			textParagraph("", plainRun("Body text.\n")),
			textParagraph(StyleHeading3, plainRun("Sub\n")),
		}},
	}

	md, err := DocumentToMarkdown(doc)
	require.NoError(t, err)

	assert.Contains(t, md, "# My Document\n\n")
	assert.Contains(t, md, "# Section\n")
	assert.Contains(t, md, "### Sub\n")
	assert.Contains(t, md, "Body text.\n")
}

func TestDocumentToMarkdownInlineFormatting(t *testing.T) {
	doc := &docsapi.Document{
		Body: &docsapi.Body{Content: []*docsapi.StructuralElement{
			textParagraph("",
				styledRun("bold", &docsapi.TextStyle{Bold: true}),
				plainRun(" and "),
				styledRun("italic", &docsapi.TextStyle{Italic: true}),
				plainRun(" and "),
				styledRun("both", &docsapi.TextStyle{Bold: true, Italic: true}),
				plainRun("\n"),
			),
		}},
	}

	md, err := DocumentToMarkdown(doc)
	require.NoError(t, err)

	assert.Contains(t, md, "**bold**")
	assert.Contains(t, md, "*italic*")
	assert.Contains(t, md, "***both***")
}

func TestDocumentToMarkdownEmphasisExcludesNewline(t *testing.T) {
	doc := &docsapi.Document{
		Body: &docsapi.Body{Content: []*docsapi.StructuralElement{
			textParagraph("", styledRun("strong\n", &docsapi.TextStyle{Bold: true})),
		}},
	}

	md, err := DocumentToMarkdown(doc)
	require.NoError(t, err)

	assert.Contains(t, md, "**strong**\n")
	assert.NotContains(t, md, "strong\n**")
}

func TestDocumentToMarkdownLinksAndCode(t *testing.T) {
	doc := &docsapi.Document{
		Body: &docsapi.Body{Content: []*docsapi.StructuralElement{
			textParagraph("",
				styledRun("example", &docsapi.TextStyle{Link: &docsapi.Link{Url: "https://example.com"}}),
				plainRun(" plus "),
				styledRun("code", &docsapi.TextStyle{
					WeightedFontFamily: &docsapi.WeightedFontFamily{FontFamily: "Courier New"},
				}),
				plainRun("\n"),
			),
		}},
	}

	md, err := DocumentToMarkdown(doc)
	require.NoError(t, err)

	assert.Contains(t, md, "[example](https://example.com)")
	assert.Contains(t, md, "`code`")
}

func TestDocumentToMarkdownLists(t *testing.T) {
	bulletPara := func(listID string, depth int64, content string) *docsapi.StructuralElement {
		el := textParagraph("", plainRun(content))
		el.Paragraph.Bullet = &docsapi.Bullet{ListId: listID, NestingLevel: depth}
		return el
	}

	doc := &docsapi.Document{
		Lists: map[string]docsapi.List{
			"num": {ListProperties: &docsapi.ListProperties{
				NestingLevels: []*docsapi.NestingLevel{{GlyphType: "DECIMAL"}},
			}},
			"disc": {ListProperties: &docsapi.ListProperties{
				NestingLevels: []*docsapi.NestingLevel{
					{GlyphType: "GLYPH_TYPE_UNSPECIFIED"},
					{GlyphType: "GLYPH_TYPE_UNSPECIFIED"},
				},
			}},
		},
		Body: &docsapi.Body{Content: []*docsapi.StructuralElement{
			bulletPara("disc", 0, "item\n"),
			bulletPara("disc", 1, "nested\n"),
			bulletPara("num", 0, "step\n"),
		}},
	}

	md, err := DocumentToMarkdown(doc)
	require.NoError(t, err)

	assert.Contains(t, md, "- item\n")
	assert.Contains(t, md, "  - nested\n")
	assert.Contains(t, md, "1. step\n")
}

func TestDocumentToMarkdownTable(t *testing.T) {
	cell := func(content string) *docsapi.TableCell {
		return &docsapi.TableCell{Content: []*docsapi.StructuralElement{
			textParagraph("", plainRun(content)),
		}}
	}

	doc := &docsapi.Document{
		Body: &docsapi.Body{Content: []*docsapi.StructuralElement{
			{Table: &docsapi.Table{TableRows: []*docsapi.TableRow{
				{TableCells: []*docsapi.TableCell{cell("Name\n"), cell("Value\n")}},
				{TableCells: []*docsapi.TableCell{cell("a\n"), cell("1\n")}},
			}}},
		}},
	}

	md, err := DocumentToMarkdown(doc)
	require.NoError(t, err)

	assert.Contains(t, md, "| Name | Value |")
	assert.Contains(t, md, "| --- | --- |")
	assert.Contains(t, md, "| a | 1 |")
}

func TestDocumentToMarkdownTabs(t *testing.T) {
	doc := &docsapi.Document{
		Title: "Tabbed",
		Tabs: []*docsapi.Tab{
			{
				TabProperties: &docsapi.TabProperties{Title: "First"},
				DocumentTab: &docsapi.DocumentTab{Body: &docsapi.Body{Content: []*docsapi.StructuralElement{
					textParagraph("", plainRun("first tab text\n")),
				}}},
				ChildTabs: []*docsapi.Tab{
					{
						TabProperties: &docsapi.TabProperties{Title: "Nested"},
						DocumentTab: &docsapi.DocumentTab{Body: &docsapi.Body{Content: []*docsapi.StructuralElement{
							textParagraph("", plainRun("nested text\n")),
						}}},
					},
				},
			},
			{
				DocumentTab: &docsapi.DocumentTab{Body: &docsapi.Body{Content: []*docsapi.StructuralElement{
					textParagraph("", plainRun("second tab text\n")),
				}}},
			},
		},
	}

	md, err := DocumentToMarkdown(doc)
	require.NoError(t, err)

	assert.Contains(t, md, "## First\n")
	assert.Contains(t, md, "### Nested\n")
	assert.Contains(t, md, "## Tab 2\n")
	assert.Contains(t, md, "first tab text")
	assert.Contains(t, md, "nested text")
	assert.Contains(t, md, "second tab text")
}

func TestDocumentToPlainText(t *testing.T) {
	doc := &docsapi.Document{
		Title: "Plain",
		Body: &docsapi.Body{Content: []*docsapi.StructuralElement{
			textParagraph(StyleHeading1, plainRun("Heading\n")),
			textParagraph("",
				styledRun("bold", &docsapi.TextStyle{Bold: true}),
				plainRun(" text\n"),
			),
		}},
	}

	text, err := DocumentToPlainText(doc)
	require.NoError(t, err)

	assert.Contains(t, text, "Plain\n\n")
	assert.Contains(t, text, "Heading\n")
	assert.Contains(t, text, "bold text\n")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "#")
}

func TestDocumentToPlainTextTabs(t *testing.T) {
	doc := &docsapi.Document{
		Tabs: []*docsapi.Tab{
			{
				TabProperties: &docsapi.TabProperties{Title: "Notes"},
				DocumentTab: &docsapi.DocumentTab{Body: &docsapi.Body{Content: []*docsapi.StructuralElement{
					textParagraph("", plainRun("tab body\n")),
				}}},
			},
			{
				DocumentTab: &docsapi.DocumentTab{Body: &docsapi.Body{Content: []*docsapi.StructuralElement{
					textParagraph("", plainRun("more\n")),
				}}},
			},
		},
	}

	text, err := DocumentToPlainText(doc)
	require.NoError(t, err)

	assert.Contains(t, text, "=== Notes ===")
	assert.Contains(t, text, "tab body")
	assert.Contains(t, text, "more")
}

func TestDocumentEndIndex(t *testing.T) {
	tests := []struct {
		name string
		doc  *docsapi.Document
		want int64
	}{
		{
			name: "empty body",
			doc:  &docsapi.Document{},
			want: 1,
		},
		{
			name: "legacy body",
			doc: &docsapi.Document{Body: &docsapi.Body{Content: []*docsapi.StructuralElement{
				{EndIndex: 10},
				{EndIndex: 42},
			}}},
			want: 42,
		},
		{
			name: "tabbed document",
			doc: &docsapi.Document{Tabs: []*docsapi.Tab{{
				DocumentTab: &docsapi.DocumentTab{Body: &docsapi.Body{Content: []*docsapi.StructuralElement{
					{EndIndex: 7},
				}}},
			}}},
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DocumentEndIndex(tt.doc))
		})
	}
}
