package render

import (
	"fmt"
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"

	"github.com/arbor-dev/arbor/pkg/vdom"
)

var (
	minifier     *minify.M
	minifierOnce sync.Once
)

// getMinifier returns the configured HTML minifier (singleton). Comments
// survive minification: the identity markers live in them.
func getMinifier() *minify.M {
	minifierOnce.Do(func() {
		minifier = minify.New()
		minifier.Add("text/html", &html.Minifier{
			KeepComments: true,
			KeepQuotes:   true,
		})
	})
	return minifier
}

// MinifyString renders a tree in canonical form and minifies the result.
// Minified output is for serving; the byte-exact oracle is always the
// canonical form. Minification failures propagate, never degrade to
// unminified output silently.
func MinifyString(node *vdom.VNode) (string, error) {
	markup, err := String(node)
	if err != nil {
		return "", err
	}
	minified, err := getMinifier().String("text/html", markup)
	if err != nil {
		return "", fmt.Errorf("render: minify: %w", err)
	}
	return minified, nil
}
