// Package blocks parses org-mode fenced blocks (#+begin_TYPE ... #+end_TYPE)
// out of post bodies and renders collapsed views of them.
package blocks

import "strings"

// OrgBlock is one fenced block region inside a post body.
type OrgBlock struct {
	// BlockType is the lower-cased token after the begin prefix.
	BlockType string
	// Attributes is everything after the first space on the begin line.
	Attributes string
	// Content is the verbatim interior, lines joined by newline.
	Content string
	// StartLine and EndLine are 0-based indices of the begin and end
	// marker lines within the parsed content.
	StartLine int
	EndLine   int
	// IsCollapsed is a display flag managed by the caller; it is reset on
	// every re-parse and must be re-applied through ApplyCollapse.
	IsCollapsed bool
}

// Element is a closed sum over the activatable regions of a post body.
// Blocks are the only variant today; the exhaustive switches at each use
// site keep future variants a compile-time exercise.
type Element interface {
	StartLine() int
	EndLine() int
	IsCollapsed() bool
	Summary() string
	Content() string

	isElement()
}

// BlockElement wraps an OrgBlock as an Element.
type BlockElement struct {
	Block OrgBlock
}

func (e BlockElement) isElement() {}

func (e BlockElement) StartLine() int    { return e.Block.StartLine }
func (e BlockElement) EndLine() int      { return e.Block.EndLine }
func (e BlockElement) IsCollapsed() bool { return e.Block.IsCollapsed }
func (e BlockElement) Content() string   { return e.Block.Content }

// Summary returns the one-line label used for collapsed display.
func (e BlockElement) Summary() string {
	var label string
	switch strings.ToLower(e.Block.BlockType) {
	case "src":
		label = "Code block"
	case "quote":
		label = "Quote block"
	case "example":
		label = "Example block"
	case "verse":
		label = "Verse block"
	default:
		label = "Block"
	}

	if e.Block.Attributes != "" {
		return label + " (" + e.Block.Attributes + ")"
	}
	return label
}

// Parse scans content for fenced blocks. Only the exact casings #+begin_
// and #+BEGIN_ open a block, and only #+end_<type> / #+END_<TYPE> close
// one. A begin line with no matching end is discarded and scanning resumes
// on the following line. Nesting is not tracked: an inner begin/end pair of
// the same type terminates the outer block early.
func Parse(content string) []Element {
	lines := strings.Split(content, "\n")
	var elements []Element

	for i := 0; i < len(lines); {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "#+begin_") || strings.HasPrefix(trimmed, "#+BEGIN_") {
			if el, ok := parseAt(i, lines); ok {
				elements = append(elements, el)
				i = el.EndLine() + 1
				continue
			}
		}
		i++
	}

	return elements
}

func parseAt(start int, lines []string) (Element, bool) {
	trimmed := strings.TrimSpace(lines[start])

	var after string
	if rest, ok := strings.CutPrefix(trimmed, "#+begin_"); ok {
		after = rest
	} else if rest, ok := strings.CutPrefix(trimmed, "#+BEGIN_"); ok {
		after = rest
	} else {
		return nil, false
	}

	blockType, attributes, _ := strings.Cut(after, " ")
	blockType = strings.ToLower(blockType)

	endLower := "#+end_" + blockType
	endUpper := "#+END_" + strings.ToUpper(blockType)

	var contentLines []string
	for idx := start + 1; idx < len(lines); idx++ {
		t := strings.TrimSpace(lines[idx])
		if t == endLower || t == endUpper {
			return BlockElement{Block: OrgBlock{
				BlockType:  blockType,
				Attributes: attributes,
				Content:    strings.Join(contentLines, "\n"),
				StartLine:  start,
				EndLine:    idx,
			}}, true
		}
		contentLines = append(contentLines, lines[idx])
	}

	return nil, false
}

// ApplyCollapse re-parses content, applies the collapse overlay (a map from
// block start line to collapsed flag), and returns the rendered content
// with collapsed blocks replaced by their one-line summaries.
func ApplyCollapse(content string, collapsed map[int]bool) (string, []Element) {
	elements := Parse(content)
	lines := strings.Split(content, "\n")

	for i, el := range elements {
		if state, ok := collapsed[el.StartLine()]; ok {
			switch e := el.(type) {
			case BlockElement:
				e.Block.IsCollapsed = state
				elements[i] = e
			}
		}
	}

	byStart := make(map[int]Element, len(elements))
	for _, el := range elements {
		byStart[el.StartLine()] = el
	}

	var out []string
	for idx := 0; idx < len(lines); {
		el, ok := byStart[idx]
		if !ok {
			out = append(out, lines[idx])
			idx++
			continue
		}
		if el.IsCollapsed() {
			out = append(out, "[+] "+el.Summary()+" [...]")
		} else {
			for i := el.StartLine(); i <= el.EndLine() && i < len(lines); i++ {
				out = append(out, lines[i])
			}
		}
		idx = el.EndLine() + 1
	}

	return strings.Join(out, "\n"), elements
}
