package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Kind identifies the structural role of a Block.
type Kind int

const (
	// KindParagraph is a plain paragraph of text.
	KindParagraph Kind = iota
	// KindHeading is an ATX-style heading (level 1-6).
	KindHeading
	// KindBulletItem is a single unordered list item.
	KindBulletItem
	// KindNumberedItem is a single ordered list item.
	KindNumberedItem
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindBulletItem:
		return "bullet"
	case KindNumberedItem:
		return "numbered"
	default:
		return "unknown"
	}
}

// IsListItem reports whether the kind is a bullet or numbered list item.
func (k Kind) IsListItem() bool {
	return k == KindBulletItem || k == KindNumberedItem
}

// Attributes is the set of inline formatting attributes carried by a Span.
type Attributes struct {
	Bold      bool
	Italic    bool
	Underline bool
	Code      bool

	// LinkURL is the destination URL when the span is link text.
	LinkURL string
}

// IsZero reports whether no attribute is set.
func (a Attributes) IsZero() bool {
	return a == Attributes{}
}

// Span is a contiguous run of text with uniform formatting.
type Span struct {
	Text string
	Attr Attributes
}

// Block is one structural unit of parsed Markdown. Blocks are immutable
// once produced by Parse.
type Block struct {
	Kind Kind

	// Level is the heading level (1-6) when Kind is KindHeading.
	Level int

	// Depth is the zero-based nesting depth when Kind is a list item.
	Depth int

	Spans []Span
}

// Text returns the Block's rendered text: the concatenation of its spans.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Parse converts Markdown source into an ordered sequence of Blocks.
// It never fails: unrecognized or malformed syntax is kept as literal text.
func Parse(source string) []Block {
	src := []byte(source)
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	var blocks []Block
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = appendBlocks(blocks, n, src, 0)
	}
	return blocks
}

// appendBlocks converts one top-level (or blockquote-nested) AST node into
// zero or more Blocks.
func appendBlocks(blocks []Block, n ast.Node, src []byte, depth int) []Block {
	switch v := n.(type) {
	case *ast.Heading:
		level := v.Level
		if level > 6 {
			level = 6
		}
		b := Block{Kind: KindHeading, Level: level, Spans: inlineSpans(v, src, Attributes{})}
		return appendNonEmpty(blocks, b)

	case *ast.Paragraph, *ast.TextBlock:
		b := Block{Kind: KindParagraph, Spans: inlineSpans(n, src, Attributes{})}
		return appendNonEmpty(blocks, b)

	case *ast.List:
		kind := KindBulletItem
		if v.IsOrdered() {
			kind = KindNumberedItem
		}
		for item := v.FirstChild(); item != nil; item = item.NextSibling() {
			blocks = appendListItem(blocks, item, src, kind, depth)
		}
		return blocks

	case *ast.FencedCodeBlock:
		return appendNonEmpty(blocks, codeBlock(v.Lines(), src))

	case *ast.CodeBlock:
		return appendNonEmpty(blocks, codeBlock(v.Lines(), src))

	case *ast.Blockquote:
		// Quote markers carry no Docs equivalent here; keep the content.
		for c := v.FirstChild(); c != nil; c = c.NextSibling() {
			blocks = appendBlocks(blocks, c, src, depth)
		}
		return blocks

	case *ast.ThematicBreak:
		return blocks

	case *ast.HTMLBlock:
		b := Block{Kind: KindParagraph, Spans: rawLineSpans(v.Lines(), src)}
		return appendNonEmpty(blocks, b)

	default:
		return blocks
	}
}

// appendListItem flattens a list item (and any nested lists) into Blocks.
func appendListItem(blocks []Block, item ast.Node, src []byte, kind Kind, depth int) []Block {
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.List:
			nested := KindBulletItem
			if v.IsOrdered() {
				nested = KindNumberedItem
			}
			for it := v.FirstChild(); it != nil; it = it.NextSibling() {
				blocks = appendListItem(blocks, it, src, nested, depth+1)
			}
		case *ast.TextBlock, *ast.Paragraph:
			b := Block{Kind: kind, Depth: depth, Spans: inlineSpans(c, src, Attributes{})}
			blocks = appendNonEmpty(blocks, b)
		case *ast.FencedCodeBlock:
			cb := codeBlock(v.Lines(), src)
			cb.Kind = kind
			cb.Depth = depth
			blocks = appendNonEmpty(blocks, cb)
		default:
			blocks = appendBlocks(blocks, c, src, depth)
		}
	}
	return blocks
}

// codeBlock renders a code block's lines as a single paragraph whose spans
// carry the code attribute. Lines are joined with paragraph breaks so the
// block survives the trip through a plain-text document body.
func codeBlock(lines *text.Segments, src []byte) Block {
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(src)), "\n")
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(line)
	}
	return Block{
		Kind:  KindParagraph,
		Spans: []Span{{Text: sb.String(), Attr: Attributes{Code: true}}},
	}
}

// rawLineSpans keeps raw block lines as literal text.
func rawLineSpans(lines *text.Segments, src []byte) []Span {
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	txt := strings.TrimRight(sb.String(), "\n")
	if txt == "" {
		return nil
	}
	return []Span{{Text: txt}}
}

// inlineSpans walks the inline children of parent, producing spans with
// attr merged with whatever formatting the walk encounters.
func inlineSpans(parent ast.Node, src []byte, attr Attributes) []Span {
	var spans []Span
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		spans = append(spans, spanify(c, src, attr)...)
	}
	return mergeSpans(spans)
}

func spanify(n ast.Node, src []byte, attr Attributes) []Span {
	switch v := n.(type) {
	case *ast.Text:
		txt := string(util.UnescapePunctuations(v.Segment.Value(src)))
		if v.SoftLineBreak() || v.HardLineBreak() {
			txt += "\n"
		}
		if txt == "" {
			return nil
		}
		return []Span{{Text: txt, Attr: attr}}

	case *ast.String:
		if len(v.Value) == 0 {
			return nil
		}
		return []Span{{Text: string(v.Value), Attr: attr}}

	case *ast.CodeSpan:
		a := attr
		a.Code = true
		return inlineSpans(v, src, a)

	case *ast.Emphasis:
		a := attr
		if v.Level >= 2 {
			a.Bold = true
		} else {
			a.Italic = true
		}
		return inlineSpans(v, src, a)

	case *ast.Link:
		a := attr
		a.LinkURL = string(v.Destination)
		return inlineSpans(v, src, a)

	case *ast.AutoLink:
		a := attr
		a.LinkURL = string(v.URL(src))
		return []Span{{Text: string(v.Label(src)), Attr: a}}

	case *ast.Image:
		// No inline object support; the alt text survives.
		return inlineSpans(v, src, attr)

	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < v.Segments.Len(); i++ {
			seg := v.Segments.At(i)
			sb.Write(seg.Value(src))
		}
		if sb.Len() == 0 {
			return nil
		}
		return []Span{{Text: sb.String(), Attr: attr}}

	default:
		return inlineSpans(n, src, attr)
	}
}

// mergeSpans joins adjacent spans with identical attributes and drops
// empty ones, preserving the gap-free span invariant.
func mergeSpans(spans []Span) []Span {
	merged := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if n := len(merged); n > 0 && merged[n-1].Attr == s.Attr {
			merged[n-1].Text += s.Text
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// appendNonEmpty appends b unless it renders to empty text.
func appendNonEmpty(blocks []Block, b Block) []Block {
	if len(b.Spans) == 0 {
		return blocks
	}
	return append(blocks, b)
}
