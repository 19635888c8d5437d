package docs

import (
	"strings"
	"unicode/utf16"

	"github.com/teemow/docsmith/internal/markdown"
)

// FormattingRange marks a run of rendered text that carries inline
// formatting. Offsets are zero-based UTF-16 code units into the
// rendered text, end exclusive.
type FormattingRange struct {
	Start int64
	End   int64
	Attr  markdown.Attributes
}

// StructuralRange marks a paragraph-level construct in the rendered
// text. The range covers the paragraph's visible text without the
// trailing newline. For list items the range includes the leading
// indentation tabs.
type StructuralRange struct {
	Start int64
	End   int64
	Kind  markdown.Kind

	// Level is the heading level when Kind is KindHeading.
	Level int

	// Depth is the nesting depth when Kind is a list item.
	Depth int
}

// Flattened is the result of resolving parsed Markdown blocks into a
// single rendered string with formatting and structural ranges. Every
// range is expressed relative to the start of Text.
type Flattened struct {
	Text       string
	Formatting []FormattingRange
	Structural []StructuralRange
}

// IsEmpty reports whether the flattened content has no text.
func (f *Flattened) IsEmpty() bool {
	return f.Text == ""
}

// Flatten renders blocks into the text that will be inserted into a
// document, recording where formatting and paragraph styles apply.
// Each block is terminated with a newline so it becomes its own
// paragraph. List nesting is rendered as leading tabs, which the
// bullet request later consumes.
func Flatten(blocks []markdown.Block) *Flattened {
	f := &Flattened{}
	var sb strings.Builder
	var cursor int64

	for _, b := range blocks {
		blockStart := cursor

		if b.Kind.IsListItem() && b.Depth > 0 {
			tabs := strings.Repeat("\t", b.Depth)
			sb.WriteString(tabs)
			cursor += int64(b.Depth)
		}

		for _, s := range b.Spans {
			length := utf16Len(s.Text)
			if !s.Attr.IsZero() {
				f.Formatting = append(f.Formatting, FormattingRange{
					Start: cursor,
					End:   cursor + length,
					Attr:  s.Attr,
				})
			}
			sb.WriteString(s.Text)
			cursor += length
		}

		if b.Kind != markdown.KindParagraph || cursor > blockStart {
			f.Structural = append(f.Structural, StructuralRange{
				Start: blockStart,
				End:   cursor,
				Kind:  b.Kind,
				Level: b.Level,
				Depth: b.Depth,
			})
		}

		sb.WriteString("\n")
		cursor++
	}

	f.Text = sb.String()
	return f
}

// utf16Len returns the length of s in UTF-16 code units, the offset
// unit the Docs API counts indexes in. Runes outside the basic
// multilingual plane count as two.
func utf16Len(s string) int64 {
	var n int64
	for _, r := range s {
		n += int64(utf16.RuneLen(r))
	}
	return n
}
