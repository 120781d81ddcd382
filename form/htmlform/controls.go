package htmlform

import (
	"encoding/json"
	"fmt"

	"golang.org/x/net/html"

	"github.com/kbukum/scribe/form"
)

// inputControl is the live handle for an <input>. For radio/checkbox
// controls SetValue operates group-wide: the sibling whose value attribute
// matches is checked and the rest are cleared.
type inputControl struct {
	doc  *Document
	node *html.Node
}

func (c *inputControl) Value() (string, bool) {
	if isGroupedInput(c.node) {
		checked := checkedSibling(c.doc.root, attrOr(c.node, "name", ""))
		if checked == nil {
			return "", false
		}
		return attrOr(checked, "value", ""), true
	}
	return attrOr(c.node, "value", ""), true
}

func (c *inputControl) SetValue(value string) error {
	if isGroupedInput(c.node) {
		name := attrOr(c.node, "name", "")
		matched := false
		for _, sibling := range groupSiblings(c.doc.root, name) {
			if attrOr(sibling, "value", "") == value {
				setAttr(sibling, "checked", "checked")
				matched = true
			} else {
				removeAttr(sibling, "checked")
			}
		}
		if !matched {
			return fmt.Errorf("htmlform: no option %q in group %q", value, name)
		}
		return nil
	}
	setAttr(c.node, "value", value)
	return nil
}

func (c *inputControl) Visible() bool     { return nodeVisible(c.node) }
func (c *inputControl) Bounds() form.Rect { return boundsOf(c.node) }

// textareaControl reads and writes the text content of a <textarea>.
type textareaControl struct {
	node *html.Node
}

func (c *textareaControl) Value() (string, bool) {
	return innerText(c.node), true
}

func (c *textareaControl) SetValue(value string) error {
	for c.node.FirstChild != nil {
		c.node.RemoveChild(c.node.FirstChild)
	}
	c.node.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	return nil
}

func (c *textareaControl) Visible() bool     { return nodeVisible(c.node) }
func (c *textareaControl) Bounds() form.Rect { return boundsOf(c.node) }

// selectControl reads the selected <option> and writes the selection.
// Like the browser, an unselected select reports its first option.
type selectControl struct {
	node *html.Node
}

func (c *selectControl) Value() (string, bool) {
	options := childElements(c.node, "option")
	if len(options) == 0 {
		return "", false
	}
	for _, opt := range options {
		if _, ok := attr(opt, "selected"); ok {
			return attrOr(opt, "value", ""), true
		}
	}
	return attrOr(options[0], "value", ""), true
}

func (c *selectControl) SetValue(value string) error {
	matched := false
	for _, opt := range childElements(c.node, "option") {
		if attrOr(opt, "value", "") == value {
			setAttr(opt, "selected", "selected")
			matched = true
		} else {
			removeAttr(opt, "selected")
		}
	}
	if !matched {
		return fmt.Errorf("htmlform: no option %q in select", value)
	}
	return nil
}

func (c *selectControl) Visible() bool     { return nodeVisible(c.node) }
func (c *selectControl) Bounds() form.Rect { return boundsOf(c.node) }

// listboxControl reads and writes the JSON-encoded value attribute of a
// custom listbox widget.
type listboxControl struct {
	node *html.Node
}

func (c *listboxControl) Value() (string, bool) {
	raw, ok := attr(c.node, attrListboxValue)
	if !ok || raw == "" {
		return "", false
	}
	var value string
	if err := json.Unmarshal([]byte(raw), &value); err != nil || value == "" {
		return "", false
	}
	return value, true
}

func (c *listboxControl) SetValue(value string) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	setAttr(c.node, attrListboxValue, string(encoded))
	return nil
}

func (c *listboxControl) Visible() bool     { return nodeVisible(c.node) }
func (c *listboxControl) Bounds() form.Rect { return boundsOf(c.node) }

// decodeListboxOptions decodes the JSON option list: an array of
// [value, text] pairs.
func decodeListboxOptions(raw string) []form.Option {
	if raw == "" {
		return nil
	}
	var pairs [][2]string
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return nil
	}
	options := make([]form.Option, len(pairs))
	for i, pair := range pairs {
		options[i] = form.Option{Value: pair[0], Text: pair[1]}
	}
	return options
}

func isGroupedInput(n *html.Node) bool {
	t := attrOr(n, "type", "")
	return t == "radio" || t == "checkbox"
}

func groupSiblings(root *html.Node, name string) []*html.Node {
	var siblings []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "input" && isGroupedInput(n) && attrOr(n, "name", "") == name {
			siblings = append(siblings, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return siblings
}

func checkedSibling(root *html.Node, name string) *html.Node {
	for _, sibling := range groupSiblings(root, name) {
		if _, ok := attr(sibling, "checked"); ok {
			return sibling
		}
	}
	return nil
}
