package docs

import (
	"fmt"
	"sort"

	"github.com/teemow/docsmith/internal/markdown"
)

// OpKind identifies the type of a planned document operation.
type OpKind int

const (
	// OpInsertText inserts text at Start.
	OpInsertText OpKind = iota
	// OpDeleteRange deletes the content between Start and End.
	OpDeleteRange
	// OpStyleParagraph applies a named paragraph style over [Start, End).
	OpStyleParagraph
	// OpStyleText applies inline text styling over [Start, End).
	OpStyleText
	// OpCreateList turns the paragraphs in [Start, End) into a list,
	// consuming their leading indentation tabs.
	OpCreateList
)

// Paragraph style names understood by the Docs API.
const (
	StyleNormalText = "NORMAL_TEXT"
	StyleHeading1   = "HEADING_1"
	StyleHeading2   = "HEADING_2"
	StyleHeading3   = "HEADING_3"
	StyleHeading4   = "HEADING_4"
	StyleHeading5   = "HEADING_5"
	StyleHeading6   = "HEADING_6"
)

// Bullet presets for list creation.
const (
	PresetBullet   = "BULLET_DISC_CIRCLE_SQUARE"
	PresetNumbered = "NUMBERED_DECIMAL_ALPHA_ROMAN"
)

// Text style field names, matching the Docs API field mask.
const (
	FieldBold       = "bold"
	FieldItalic     = "italic"
	FieldUnderline  = "underline"
	FieldFontFamily = "weightedFontFamily"
	FieldLink       = "link"
)

// Operation is one planned mutation against a document. Start and End
// are one-based document indexes in UTF-16 code units.
type Operation struct {
	Kind  OpKind
	Start int64
	End   int64

	// Text is the content for OpInsertText.
	Text string

	// NamedStyle is the paragraph style for OpStyleParagraph.
	NamedStyle string

	// Attr holds the attribute values for OpStyleText. Fields lists
	// which of them to write; a listed field with a false value
	// clears that attribute.
	Attr   markdown.Attributes
	Fields []string

	// Preset is the bullet preset for OpCreateList.
	Preset string
}

// Insertion is one anchored text insertion for PlanMulti.
type Insertion struct {
	Index int64
	Text  string
}

// HeadingStyle maps a heading level to its named paragraph style.
// Levels outside 1-6 clamp to the nearest valid style.
func HeadingStyle(level int) string {
	switch {
	case level <= 1:
		return StyleHeading1
	case level == 2:
		return StyleHeading2
	case level == 3:
		return StyleHeading3
	case level == 4:
		return StyleHeading4
	case level == 5:
		return StyleHeading5
	default:
		return StyleHeading6
	}
}

// PlanInsertAt plans the insertion of flattened content at anchor. A
// single insert carries the entire text, so every later range offset
// stays valid relative to the anchor. Style operations follow in
// ascending order, and list creation runs last in descending order
// because consuming indentation tabs shifts everything behind it.
func PlanInsertAt(anchor int64, f *Flattened) []Operation {
	if f == nil || f.IsEmpty() {
		return nil
	}

	ops := []Operation{{
		Kind:  OpInsertText,
		Start: anchor,
		Text:  f.Text,
	}}

	for _, s := range f.Structural {
		if s.Kind != markdown.KindHeading {
			continue
		}
		ops = append(ops, Operation{
			Kind:       OpStyleParagraph,
			Start:      anchor + s.Start,
			End:        anchor + s.End + 1,
			NamedStyle: HeadingStyle(s.Level),
		})
	}

	for _, r := range f.Formatting {
		ops = append(ops, Operation{
			Kind:   OpStyleText,
			Start:  anchor + r.Start,
			End:    anchor + r.End,
			Attr:   r.Attr,
			Fields: fieldsFor(r.Attr),
		})
	}

	lists := listRuns(f.Structural)
	sort.Slice(lists, func(i, j int) bool { return lists[i].Start > lists[j].Start })
	for _, run := range lists {
		ops = append(ops, Operation{
			Kind:   OpCreateList,
			Start:  anchor + run.Start,
			End:    anchor + run.End + 1,
			Preset: run.Preset,
		})
	}

	return ops
}

// PlanFresh plans writing flattened content into an empty document.
func PlanFresh(f *Flattened) []Operation {
	return PlanInsertAt(1, f)
}

// PlanAppend plans appending flattened content to a document whose
// body ends at endIndex. The anchor sits just before the final
// newline, and a separator newline keeps the new content on its own
// paragraph.
func PlanAppend(endIndex int64, f *Flattened) []Operation {
	if f == nil || f.IsEmpty() {
		return nil
	}

	anchor := endIndex - 1
	if anchor < 1 {
		anchor = 1
	}

	shifted := &Flattened{
		Text:       "\n" + f.Text,
		Formatting: shiftFormatting(f.Formatting, 1),
		Structural: shiftStructural(f.Structural, 1),
	}
	return PlanInsertAt(anchor, shifted)
}

// PlanReplace plans replacing a document's entire body with flattened
// content. The delete runs before the insert so the insert anchor is
// computed against the emptied document.
func PlanReplace(endIndex int64, f *Flattened) []Operation {
	var ops []Operation
	if endIndex > 2 {
		ops = append(ops, Operation{
			Kind:  OpDeleteRange,
			Start: 1,
			End:   endIndex - 1,
		})
	}
	return append(ops, PlanFresh(f)...)
}

// PlanMulti plans several independent text insertions against the same
// document revision. Insertions are ordered by descending index so an
// earlier insertion never invalidates a later one's offset.
func PlanMulti(inserts []Insertion) []Operation {
	sorted := make([]Insertion, len(inserts))
	copy(sorted, inserts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index > sorted[j].Index })

	var ops []Operation
	for _, ins := range sorted {
		if ins.Text == "" {
			continue
		}
		ops = append(ops, Operation{
			Kind:  OpInsertText,
			Start: ins.Index,
			Text:  ins.Text,
		})
	}
	return ops
}

// PlanTextStyle plans a single inline styling operation over an
// explicit document range. Fields controls which attributes are
// written, so a false value clears the attribute rather than leaving
// it untouched.
func PlanTextStyle(start, end int64, attr markdown.Attributes, fields []string) []Operation {
	if len(fields) == 0 {
		return nil
	}
	return []Operation{{
		Kind:   OpStyleText,
		Start:  start,
		End:    end,
		Attr:   attr,
		Fields: fields,
	}}
}

// Validate checks a plan against the ordering rules the Docs API
// requires for offset stability, and that no operation references an
// offset beyond the document length produced by the operations before
// it. The first operation's range is taken as the caller's statement
// of the live document extent; from there inserts grow the known
// length by the UTF-16 length of their text and deletes shrink it.
func Validate(ops []Operation) error {
	lastListStart := int64(-1)
	sawList := false
	length := int64(-1)

	for i, op := range ops {
		if op.Start < 1 {
			return fmt.Errorf("operation %d: %w: start %d", i, ErrOffsetOutOfRange, op.Start)
		}
		switch op.Kind {
		case OpInsertText:
			if op.Text == "" {
				return fmt.Errorf("operation %d: insert with empty text", i)
			}
		case OpDeleteRange, OpStyleParagraph, OpStyleText, OpCreateList:
			if op.End <= op.Start {
				return fmt.Errorf("operation %d: %w: range [%d, %d)", i, ErrOffsetOutOfRange, op.Start, op.End)
			}
		}

		if length < 0 {
			length = op.Start
			if op.End > length {
				length = op.End
			}
		} else if op.Kind == OpInsertText {
			if op.Start > length {
				return fmt.Errorf("operation %d: %w: insert at %d beyond length %d", i, ErrOffsetOutOfRange, op.Start, length)
			}
		} else if op.End > length {
			return fmt.Errorf("operation %d: %w: range [%d, %d) beyond length %d", i, ErrOffsetOutOfRange, op.Start, op.End, length)
		}
		switch op.Kind {
		case OpInsertText:
			length += utf16Len(op.Text)
		case OpDeleteRange:
			length -= op.End - op.Start
		}

		if op.Kind == OpCreateList {
			if sawList && op.Start >= lastListStart {
				return fmt.Errorf("operation %d: list creation not in descending order", i)
			}
			sawList = true
			lastListStart = op.Start
		} else if sawList {
			return fmt.Errorf("operation %d: follows list creation", i)
		}
	}
	return nil
}

type listRun struct {
	Start  int64
	End    int64
	Preset string
}

// listRuns groups contiguous list-item paragraphs into runs that can
// share one bullet request. The run's preset follows its first item;
// nested items of either kind join the run and nest via their tabs.
func listRuns(structural []StructuralRange) []listRun {
	var runs []listRun
	open := false

	for _, s := range structural {
		if !s.Kind.IsListItem() {
			open = false
			continue
		}
		preset := PresetBullet
		if s.Kind == markdown.KindNumberedItem {
			preset = PresetNumbered
		}
		if open && runs[len(runs)-1].End+1 == s.Start {
			last := &runs[len(runs)-1]
			// A top-level item of a different list kind starts a new run.
			if s.Depth > 0 || last.Preset == preset {
				last.End = s.End
				continue
			}
		}
		runs = append(runs, listRun{Start: s.Start, End: s.End, Preset: preset})
		open = true
	}
	return runs
}

// fieldsFor lists the text style fields a span's attributes set.
func fieldsFor(a markdown.Attributes) []string {
	var fields []string
	if a.Bold {
		fields = append(fields, FieldBold)
	}
	if a.Italic {
		fields = append(fields, FieldItalic)
	}
	if a.Underline {
		fields = append(fields, FieldUnderline)
	}
	if a.Code {
		fields = append(fields, FieldFontFamily)
	}
	if a.LinkURL != "" {
		fields = append(fields, FieldLink)
	}
	return fields
}

func shiftFormatting(ranges []FormattingRange, by int64) []FormattingRange {
	shifted := make([]FormattingRange, len(ranges))
	for i, r := range ranges {
		r.Start += by
		r.End += by
		shifted[i] = r
	}
	return shifted
}

func shiftStructural(ranges []StructuralRange, by int64) []StructuralRange {
	shifted := make([]StructuralRange, len(ranges))
	for i, r := range ranges {
		r.Start += by
		r.End += by
		shifted[i] = r
	}
	return shifted
}
