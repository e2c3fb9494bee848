package ocr

import (
	"bytes"
	"fmt"
	"image"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ParseHOCR extracts recognized words from an hOCR document, the HTML-based
// OCR result format emitted by Tesseract and others. It collects every
// element carrying the ocrx_word class, reading the bounding box and
// confidence from the element's title attribute
// (e.g. `bbox 100 120 180 150; x_wconf 93`).
func ParseHOCR(data []byte) ([]Word, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	var words []Word
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocrx_word") {
			text := normalizeText(nodeText(n))
			if text != "" {
				bbox, conf := parseTitle(attr(n, "title"))
				words = append(words, Word{Text: text, BBox: bbox, Confidence: conf})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return words, nil
}

// hasClass reports whether the node's class attribute contains the given
// class name.
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// nodeText concatenates all text content beneath a node.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}

// parseTitle reads the bbox and x_wconf properties from an hOCR title
// attribute. Missing or malformed properties yield a zero rectangle or
// zero confidence; hOCR producers vary and a bad title should not drop
// the word itself.
func parseTitle(title string) (image.Rectangle, float64) {
	var bbox image.Rectangle
	var conf float64

	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "bbox":
			if len(fields) != 5 {
				continue
			}
			coords := make([]int, 4)
			ok := true
			for i, f := range fields[1:] {
				v, err := strconv.Atoi(f)
				if err != nil {
					ok = false
					break
				}
				coords[i] = v
			}
			if ok {
				bbox = image.Rect(coords[0], coords[1], coords[2], coords[3])
			}
		case "x_wconf":
			if len(fields) == 2 {
				if v, err := strconv.ParseFloat(fields[1], 64); err == nil {
					conf = v
				}
			}
		}
	}
	return bbox, conf
}
