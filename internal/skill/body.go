package skill

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/thoreinstein/autoskills/internal/errors"
)

// Body is a skill body in structured form: a single "# Title" heading
// followed by free-form instructions.
type Body struct {
	Title        string
	Instructions string
}

// String renders the body as "# Title", a blank line, the instructions and a
// trailing newline.
func (b Body) String() string {
	return "# " + b.Title + "\n\n" + b.Instructions + "\n"
}

var markdown = goldmark.New()

// ParseBody splits a Markdown body into title and instructions. The body
// must open (after blank lines) with a level-1 ATX heading and contain no
// other level-1 heading; anything else yields errors.ErrUnsupportedBody.
func ParseBody(body string) (Body, error) {
	src := []byte(body)
	doc := markdown.Parser().Parse(text.NewReader(src))

	first := doc.FirstChild()
	heading, ok := first.(*ast.Heading)
	if !ok || heading.Level != 1 || heading.Lines().Len() != 1 {
		return Body{}, errors.Wrap(errors.ErrUnsupportedBody, "body must start with a single \"# Title\" heading")
	}

	seg := heading.Lines().At(0)
	lineStart := bytes.LastIndexByte(src[:seg.Start], '\n') + 1
	if !bytes.HasPrefix(bytes.TrimLeft(src[lineStart:seg.Start], " "), []byte("#")) {
		return Body{}, errors.Wrap(errors.ErrUnsupportedBody, "title must be an ATX heading")
	}

	for n := first.NextSibling(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			return Body{}, errors.Wrap(errors.ErrUnsupportedBody, "body has more than one level-1 heading")
		}
	}

	title := strings.TrimSpace(string(heading.Lines().Value(src)))
	if title == "" {
		return Body{}, errors.Wrap(errors.ErrUnsupportedBody, "title is empty")
	}

	var rest string
	if nl := bytes.IndexByte(src[seg.Stop:], '\n'); nl >= 0 {
		rest = string(src[seg.Stop+nl+1:])
	}

	return Body{
		Title:        title,
		Instructions: strings.TrimSpace(rest),
	}, nil
}
