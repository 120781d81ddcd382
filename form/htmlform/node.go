package htmlform

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/kbukum/scribe/form"
)

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func attrOr(n *html.Node, name, fallback string) string {
	if v, ok := attr(n, name); ok {
		return v
	}
	return fallback
}

func setAttr(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// nodeVisible reports whether the node and all of its ancestors are
// rendered: no hidden attribute, no type=hidden, and no inline style
// hiding the element.
func nodeVisible(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if _, hidden := attr(p, "hidden"); hidden {
			return false
		}
		if attrOr(p, "type", "") == "hidden" {
			return false
		}
		style := strings.ReplaceAll(attrOr(p, "style", ""), " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false
		}
	}
	return true
}

func innerText(n *html.Node) string {
	return labelText(n, nil)
}

// labelText collects text under n, skipping the exclude subtree.
func labelText(n, exclude *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n == exclude {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func childElements(n *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return found
}

// boundsOf parses the data-bounds attribute, four comma-separated numbers
// x,y,width,height. A missing or malformed attribute yields a zero rect.
func boundsOf(n *html.Node) form.Rect {
	raw, ok := attr(n, attrBounds)
	if !ok {
		return form.Rect{}
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return form.Rect{}
	}
	nums := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return form.Rect{}
		}
		nums[i] = v
	}
	return form.Rect{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}
}
