package frameio

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/framelai"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML frame files mark frames and their text elements with data attributes:
//
//	<section data-frame-id="frame1" data-frame-name="Onboarding Screen">
//	  <h1 data-text-id="t1-1">Welcome to Figma Translator</h1>
//	  <button data-text-id="t1-3">Next</button>
//	</section>
//
// Elements with an empty data-text-id get a generated ID. Elements inside a
// data-no-translate subtree are ignored. A frame without data-frame-name is
// named after its first heading, or its ID.
//
// Text content is trimmed and whitespace runs, line breaks included, fold to a
// single space, so multi-line content does not survive an HTML round trip.
// Use JSON or YAML when line breaks must be kept.
const (
	attrFrameID     = "data-frame-id"
	attrFrameName   = "data-frame-name"
	attrTextID      = "data-text-id"
	attrNoTranslate = "data-no-translate"
)

const skeleton = `<!DOCTYPE html><html><head><meta charset="utf-8"/><title>Frames</title></head><body></body></html>`

func parseHTML(r io.Reader) (framelai.Collection, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, &framelai.ProcessorError{
			Message:     "failed to parse HTML",
			Cause:       err,
			ContentType: "html",
		}
	}
	doc := goquery.NewDocumentFromNode(root)

	frames := framelai.Collection{}
	doc.Find("[" + attrFrameID + "]").Each(func(_ int, sel *goquery.Selection) {
		if skipped(sel) {
			return
		}

		frame := framelai.Frame{
			ID:    strings.TrimSpace(sel.AttrOr(attrFrameID, "")),
			Name:  strings.TrimSpace(sel.AttrOr(attrFrameName, "")),
			Texts: []framelai.TextElement{},
		}
		if frame.Name == "" {
			frame.Name = strings.TrimSpace(sel.Find("h1, h2, h3, h4, h5, h6").First().Text())
		}

		sel.Find("[" + attrTextID + "]").Each(func(_ int, textSel *goquery.Selection) {
			if skipped(textSel) || owner(textSel) != sel.Nodes[0] {
				return
			}
			frame.Texts = append(frame.Texts, framelai.TextElement{
				ID:      strings.TrimSpace(textSel.AttrOr(attrTextID, "")),
				Content: collapseSpace(textSel.Text()),
			})
		})

		frames = append(frames, frame)
	})

	return frames, nil
}

// skipped reports whether the element or one of its ancestors opts out.
func skipped(sel *goquery.Selection) bool {
	_, own := sel.Attr(attrNoTranslate)
	return own || sel.ParentsFiltered("["+attrNoTranslate+"]").Length() > 0
}

// owner returns the nearest enclosing frame node of a text element, so text
// elements of nested frames are not counted twice.
func owner(sel *goquery.Selection) *html.Node {
	parents := sel.ParentsFiltered("[" + attrFrameID + "]")
	if parents.Length() == 0 {
		return nil
	}
	return parents.Nodes[0]
}

// collapseSpace trims the text and folds internal whitespace runs, which
// in HTML carry layout, not content.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RenderHTML writes the collection as an HTML document that Parse can
// read back. When lang is set, the <html> element gets matching lang and dir
// attributes so right-to-left translations display correctly.
func RenderHTML(w io.Writer, frames framelai.Collection, lang string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(skeleton))
	if err != nil {
		return &framelai.ProcessorError{Message: "failed to build document", Cause: err, ContentType: "html"}
	}

	body := doc.Find("body")
	for _, f := range frames {
		section := element(atom.Section, "", []html.Attribute{
			{Key: attrFrameID, Val: f.ID},
			{Key: attrFrameName, Val: f.Name},
		})
		section.AppendChild(element(atom.H2, f.Name, nil))
		for _, t := range f.Texts {
			section.AppendChild(element(atom.P, t.Content, []html.Attribute{{Key: attrTextID, Val: t.ID}}))
		}
		body.AppendNodes(section)
	}

	if lang != "" {
		htmlTag := doc.Find("html")
		htmlTag.SetAttr("lang", framelai.ToHTMLLang(framelai.NormalizeLocale(lang)))
		htmlTag.SetAttr("dir", framelai.GetDirection(lang))
	}

	if err := goquery.Render(w, doc.Selection); err != nil {
		return &framelai.ProcessorError{Message: "failed to serialize HTML", Cause: err, ContentType: "html"}
	}
	return nil
}

// element builds an element node with an optional text child. The renderer
// escapes text and attribute values.
func element(a atom.Atom, text string, attrs []html.Attribute) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return n
}
