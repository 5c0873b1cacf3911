package remote

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

var errFieldNotFound = errors.New("form field not found")

// formValue returns the value attribute of the first <input> named name.
func formValue(r io.Reader, name string) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse page failed: %w", err)
	}
	if v, ok := findInput(doc, name); ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", errFieldNotFound, name)
}

func findInput(n *html.Node, name string) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "input" && attr(n, "name") == name {
		return attr(n, "value"), true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if v, ok := findInput(c, name); ok {
			return v, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
