package htmlform

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/kbukum/scribe/form"
)

// Marker attributes of the host-page contract.
const (
	attrForm           = "data-scribe-form"
	attrIgnore         = "data-scribe-ignore"
	attrPrompt         = "data-scribe-prompt"
	attrExample        = "data-scribe-example"
	attrListbox        = "data-listbox"
	attrListboxOptions = "data-listbox-options"
	attrListboxValue   = "data-listbox-value"
	attrBounds         = "data-bounds"
)

// Document wraps a parsed HTML tree.
type Document struct {
	root *html.Node
}

// Parse reads and parses an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ScribeForm locates the subtree marked with data-scribe-form and returns
// it as a form.Form. Returns nil when no marked subtree exists.
func (d *Document) ScribeForm() form.Form {
	node := findMarked(d.root)
	if node == nil {
		return nil
	}
	return &markupForm{doc: d, node: node}
}

func findMarked(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		if v, ok := attr(n, attrForm); ok && v == "true" {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findMarked(c); found != nil {
			return found
		}
	}
	return nil
}

// markupForm implements form.Form over the marked subtree.
type markupForm struct {
	doc  *Document
	node *html.Node
}

func (f *markupForm) Visible() bool {
	return nodeVisible(f.node)
}

// Controls walks the form subtree in document order and reports every
// interactive control, skipping data-scribe-ignore subtrees.
func (f *markupForm) Controls() []form.RawControl {
	var controls []form.RawControl

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, ignored := attr(n, attrIgnore); ignored {
				return
			}
			if rc, ok := f.classify(n); ok {
				controls = append(controls, rc)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(f.node)

	return controls
}

func (f *markupForm) classify(n *html.Node) (form.RawControl, bool) {
	if _, ok := attr(n, attrListbox); ok {
		return f.listboxControl(n), true
	}

	switch n.Data {
	case "input":
		return f.inputControl(n), true
	case "textarea":
		return f.textareaControl(n), true
	case "select":
		return f.selectControl(n), true
	}
	return form.RawControl{}, false
}

func (f *markupForm) inputControl(n *html.Node) form.RawControl {
	inputType := attrOr(n, "type", "")
	name := attrOr(n, "name", "")
	rc := form.RawControl{
		Control:   &inputControl{doc: f.doc, node: n},
		Class:     form.ClassInput,
		Type:      inputType,
		Role:      attrOr(n, "role", ""),
		Name:      name,
		Label:     f.doc.labelFor(attrOr(n, "id", ""), n),
		ValueAttr: attrOr(n, "value", ""),
		Prompt:    attrOr(n, attrPrompt, ""),
		Example:   attrOr(n, attrExample, ""),
	}
	if _, ok := attr(n, "checked"); ok {
		rc.Checked = true
	}
	if inputType == "radio" || inputType == "checkbox" {
		rc.GroupLabel = f.doc.labelFor(name, nil)
	}
	return rc
}

func (f *markupForm) textareaControl(n *html.Node) form.RawControl {
	return form.RawControl{
		Control: &textareaControl{node: n},
		Class:   form.ClassTextArea,
		Label:   f.doc.labelFor(attrOr(n, "id", ""), n),
		Prompt:  attrOr(n, attrPrompt, ""),
		Example: attrOr(n, attrExample, ""),
	}
}

func (f *markupForm) selectControl(n *html.Node) form.RawControl {
	var options []form.Option
	for _, opt := range childElements(n, "option") {
		options = append(options, form.Option{
			Value: attrOr(opt, "value", ""),
			Text:  innerText(opt),
		})
	}
	return form.RawControl{
		Control: &selectControl{node: n},
		Class:   form.ClassSelect,
		Label:   f.doc.labelFor(attrOr(n, "id", ""), n),
		Options: options,
		Prompt:  attrOr(n, attrPrompt, ""),
		Example: attrOr(n, attrExample, ""),
	}
}

func (f *markupForm) listboxControl(n *html.Node) form.RawControl {
	return form.RawControl{
		Control: &listboxControl{node: n},
		Class:   form.ClassListbox,
		Label:   f.doc.labelFor(attrOr(n, "id", ""), n),
		Options: decodeListboxOptions(attrOr(n, attrListboxOptions, "")),
		Prompt:  attrOr(n, attrPrompt, ""),
		Example: attrOr(n, attrExample, ""),
	}
}

// labelFor resolves the caption for a control: a <label for=...> matching
// the given id/name wins, falling back to a wrapping <label> ancestor. The
// control's own subtree is excluded so a wrapping label does not absorb
// the control's value text.
func (d *Document) labelFor(ref string, node *html.Node) string {
	if ref != "" {
		if label := findLabel(d.root, ref); label != nil {
			return labelText(label, nil)
		}
	}
	for p := parentOf(node); p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "label" {
			return labelText(p, node)
		}
	}
	return ""
}

func parentOf(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	return n.Parent
}

func findLabel(n *html.Node, ref string) *html.Node {
	if n.Type == html.ElementNode && n.Data == "label" {
		if v, ok := attr(n, "for"); ok && v == ref {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findLabel(c, ref); found != nil {
			return found
		}
	}
	return nil
}
