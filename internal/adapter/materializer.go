package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

// ErrMaterialize reports an edit script that cannot be applied to its text.
var ErrMaterialize = errors.New("cannot materialize edit script")

// Materializer applies an EditScript to the source text of its tree.
type Materializer interface {
	// Materialize returns the converted text. Bytes outside the edited
	// regions are copied unchanged.
	Materialize(tree *m.Tree, script m.EditScript) ([]byte, error)
}

// JavaMaterializer renders edits as Java source splices.
type JavaMaterializer struct{}

// NewJavaMaterializer constructs a JavaMaterializer.
func NewJavaMaterializer() *JavaMaterializer {
	return &JavaMaterializer{}
}

// splice replaces src[start:end] with text. Insertions have start == end.
type splice struct {
	start int
	end   int
	text  string
}

type listKey struct {
	owner m.NodeID
	list  m.ListKind
}

// Materialize implements Materializer.
func (j *JavaMaterializer) Materialize(tree *m.Tree, script m.EditScript) ([]byte, error) {
	src := tree.Source()
	splices := make([]splice, 0, script.Len())
	lists := make(map[listKey]bool)

	for _, e := range script.Edits() {
		switch e.Kind {
		case m.EditRemove:
			n, ok := tree.Node(e.Target)
			if !ok {
				return nil, fmt.Errorf("%w: %s: unknown node", ErrMaterialize, e)
			}

			r := removalRange(src, n.Range)
			splices = append(splices, splice{start: r.Start, end: r.End})

		case m.EditReplace:
			n, ok := tree.Node(e.Target)
			if !ok {
				return nil, fmt.Errorf("%w: %s: unknown node", ErrMaterialize, e)
			}

			splices = append(splices, splice{start: n.Range.Start, end: n.Range.End, text: RenderJava(e.Node)})

		case m.EditSet:
			n, ok := tree.Node(e.Target)
			if !ok || e.Property != m.PropertyReceiver {
				return nil, fmt.Errorf("%w: %s: unsupported property", ErrMaterialize, e)
			}

			if n.Receiver != m.NoNode {
				return nil, fmt.Errorf("%w: %s: receiver already present", ErrMaterialize, e)
			}

			splices = append(splices, splice{start: n.Range.Start, end: n.Range.Start, text: RenderJava(e.Node) + "."})

		case m.EditInsert:
			key := listKey{owner: e.Owner, list: e.List}
			if lists[key] {
				continue
			}

			lists[key] = true

			inserted, err := listSplices(tree, script, key)
			if err != nil {
				return nil, err
			}

			splices = append(splices, inserted...)
		}
	}

	return applySplices(src, splices)
}

// listSplices renders every insertion into one list, in the order fixed by
// model.OrderInsertions.
func listSplices(tree *m.Tree, script m.EditScript, key listKey) ([]splice, error) {
	owner, ok := tree.Node(key.owner)
	if !ok {
		return nil, fmt.Errorf("%w: unknown list owner #%d", ErrMaterialize, key.owner)
	}

	src := tree.Source()
	list := owner.List(key.list)
	ordered := script.Insertions(key.owner, key.list)

	var out []splice

	for i := 0; i < len(ordered); {
		anchor := anchorIndex(ordered[i].Position)

		offset := list.Tail
		for k := anchor; k < len(list.Items); k++ {
			if script.Removed(list.Items[k]) {
				continue
			}

			item, _ := tree.Node(list.Items[k])
			offset = item.Range.Start

			break
		}

		var text strings.Builder

		indent := lineIndent(src, offset)
		eol := lineEnding(src, offset)

		for ; i < len(ordered) && anchorIndex(ordered[i].Position) == anchor; i++ {
			switch key.list {
			case m.ListImports:
				text.WriteString(RenderJava(ordered[i].Node) + eol)
			default:
				text.WriteString(RenderJava(ordered[i].Node) + eol + indent)
			}
		}

		rendered := text.String()
		if key.list == m.ListImports && len(list.Items) == 0 {
			if offset > 0 {
				rendered = eol + rendered
			} else {
				rendered += eol
			}
		}

		out = append(out, splice{start: offset, end: offset, text: rendered})
	}

	return out, nil
}

func anchorIndex(p m.Position) int {
	if p.AtHead || p.Index < 0 {
		return 0
	}

	return p.Index
}

// removalRange widens r so that removing a node leaves no debris: a node alone
// on its line takes the whole line with it, an inline node takes the adjacent
// blanks on one side.
func removalRange(src []byte, r m.Range) m.Range {
	lineStart := bytes.LastIndexByte(src[:r.Start], '\n') + 1

	lineEnd := len(src)
	if i := bytes.IndexByte(src[r.End:], '\n'); i >= 0 {
		lineEnd = r.End + i + 1
	}

	if isBlank(src[lineStart:r.Start]) && isBlank(src[r.End:lineEnd]) {
		return m.Range{Start: lineStart, End: lineEnd}
	}

	end := r.End
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}

	if end > r.End {
		return m.Range{Start: r.Start, End: end}
	}

	start := r.Start
	for start > lineStart && (src[start-1] == ' ' || src[start-1] == '\t') {
		start--
	}

	return m.Range{Start: start, End: r.End}
}

func isBlank(b []byte) bool {
	return len(bytes.TrimSpace(b)) == 0
}

// lineIndent returns the leading blanks of the line containing off.
func lineIndent(src []byte, off int) string {
	if off > len(src) {
		off = len(src)
	}

	start := bytes.LastIndexByte(src[:off], '\n') + 1

	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}

	return string(src[start:end])
}

// lineEnding returns the terminator of the line containing off, or of the
// first line when that one has none. Sources without any line break get "\n".
func lineEnding(src []byte, off int) string {
	if off > len(src) {
		off = len(src)
	}

	i := bytes.IndexByte(src[off:], '\n')
	if i >= 0 {
		i += off
	} else {
		i = bytes.IndexByte(src, '\n')
	}

	if i > 0 && src[i-1] == '\r' {
		return "\r\n"
	}

	return "\n"
}

// applySplices builds the output. Insertions at an offset go before a
// removal starting at the same offset; any other overlap is an error.
func applySplices(src []byte, splices []splice) ([]byte, error) {
	sort.SliceStable(splices, func(i, j int) bool {
		if splices[i].start != splices[j].start {
			return splices[i].start < splices[j].start
		}

		return splices[i].start == splices[i].end && splices[j].start != splices[j].end
	})

	var out bytes.Buffer

	out.Grow(len(src))

	cursor := 0

	for _, s := range splices {
		if s.start < cursor {
			return nil, fmt.Errorf("%w: overlapping regions at offset %d", ErrMaterialize, s.start)
		}

		out.Write(src[cursor:s.start])
		out.WriteString(s.text)
		cursor = s.end
	}

	out.Write(src[cursor:])

	return out.Bytes(), nil
}
