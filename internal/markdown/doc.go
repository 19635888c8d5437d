// Package markdown parses Markdown text into a flat block/span model
// suitable for translation into Google Docs structural edits.
//
// Parsing is best-effort by design: malformed or unmatched inline markers
// degrade to literal text instead of producing an error, matching the
// forgiving contract expected by AI-assistant tool inputs. The package
// performs no text normalization; source text outside of recognized
// Markdown syntax is preserved byte-for-byte.
//
// The model is intentionally small:
//
//	Block — one structural unit (paragraph, heading, list item)
//	Span  — a contiguous formatted run of text inside a Block
//
// Spans within a Block are ordered, gap-free, and non-overlapping: the
// concatenation of a Block's span texts is exactly the Block's rendered
// text. Consumers rely on this to compute character ranges.
package markdown
