// Package markup attaches resolved integrity values to resource-loading
// tags in generated HTML. Unresolvable references degrade safely: the tag
// is left alone and a warning is recorded, so unprotected assets still load.
package markup

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"golang.org/x/net/html"

	"sealant/internal/bundle"
	"sealant/internal/diag"
)

// Injector maps tag references back to sealed assets for one bundle.
type Injector struct {
	assets     bundle.AssetMap
	publicPath string
	reporter   diag.Reporter
}

func NewInjector(assets bundle.AssetMap, publicPath string, reporter diag.Reporter) *Injector {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Injector{assets: assets, publicPath: publicPath, reporter: reporter}
}

// InjectFile parses an HTML document, injects integrity attributes into
// every qualifying tag, and renders it back. Returns the rewritten document
// and the number of tags that gained integrity protection.
func (in *Injector) InjectFile(content []byte) ([]byte, int, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse HTML: %w", err)
	}
	count := in.InjectDocument(doc)
	var out bytes.Buffer
	if err := html.Render(&out, doc); err != nil {
		return nil, 0, fmt.Errorf("failed to render HTML: %w", err)
	}
	return out.Bytes(), count, nil
}

// InjectDocument walks the node tree and processes each qualifying tag.
func (in *Injector) InjectDocument(doc *html.Node) int {
	count := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if in.InjectTag(n) {
				count++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return count
}

// InjectTag handles a single tag. Recognized kinds are script[src] and
// link[href] with a resource rel (stylesheet, preload, modulepreload).
// Returns true when integrity was attached.
func (in *Injector) InjectTag(n *html.Node) bool {
	ref, ok := tagReference(n)
	if !ok {
		return false
	}
	if getAttr(n, "integrity") != "" {
		return false
	}

	key := in.assetKey(ref)
	asset, found := in.assets[key]
	if !found || asset.Integrity == "" {
		diag.Warn(in.reporter, diag.MarkupUnresolvedRef, ref,
			fmt.Sprintf("cannot resolve %q to a sealed asset, tag left without integrity", ref))
		return false
	}

	setAttr(n, "integrity", asset.Integrity)
	setAttr(n, "crossorigin", "anonymous")
	return true
}

// assetKey strips the query/fragment and the configured public-path prefix,
// yielding the canonical output-asset key.
func (in *Injector) assetKey(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if in.publicPath != "" && strings.HasPrefix(ref, in.publicPath) {
		ref = ref[len(in.publicPath):]
	}
	ref = strings.TrimPrefix(ref, "/")
	if ref == "" {
		return ref
	}
	return path.Clean(ref)
}

func tagReference(n *html.Node) (string, bool) {
	switch n.Data {
	case "script":
		src := getAttr(n, "src")
		return src, src != ""
	case "link":
		switch getAttr(n, "rel") {
		case "stylesheet", "preload", "modulepreload":
			href := getAttr(n, "href")
			return href, href != ""
		}
	}
	return "", false
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
