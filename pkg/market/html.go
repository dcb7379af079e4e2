package market

import (
	"strings"

	"golang.org/x/net/html"
)

type matcher func(*html.Node) bool

func parseHTML(s string) (*html.Node, error) {
	return html.Parse(strings.NewReader(s))
}

// findAll returns every node under root matching m, in document order.
func findAll(root *html.Node, m matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if m(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// findFirst returns the first node under root matching m, or nil.
func findFirst(root *html.Node, m matcher) *html.Node {
	if m(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := findFirst(c, m); n != nil {
			return n
		}
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func element(tag string) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func checkbox(n *html.Node) bool {
	if !element("input")(n) {
		return false
	}
	typ, _ := attr(n, "type")
	return strings.EqualFold(strings.TrimSpace(typ), "checkbox")
}

// withClasses matches tag elements whose class attribute is exactly
// classes, ignoring surrounding and repeated whitespace.
func withClasses(tag, classes string) matcher {
	want := strings.Join(strings.Fields(classes), " ")
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != tag {
			return false
		}
		v, ok := attr(n, "class")
		return ok && strings.Join(strings.Fields(v), " ") == want
	}
}

// withClass matches tag elements carrying class among their classes.
func withClass(tag, class string) matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != tag {
			return false
		}
		v, _ := attr(n, "class")
		for _, c := range strings.Fields(v) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func withAttr(key string) matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		_, ok := attr(n, key)
		return ok
	}
}

// all matches nodes satisfying every m.
func all(ms ...matcher) matcher {
	return func(n *html.Node) bool {
		for _, m := range ms {
			if !m(n) {
				return false
			}
		}
		return true
	}
}
