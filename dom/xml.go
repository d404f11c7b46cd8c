package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// Declarative mapping between node types and the presentation tags used in
// the XML form of a document. The reverse mapping drives parsing.
var blockTags = map[NodeType]string{
	NodeRoot:       "document",
	NodeParagraph:  "p",
	NodeHeading:    "h",
	NodeBlockquote: "blockquote",
	NodeCodeBlock:  "pre",
}

var tagTypes = func() map[string]NodeType {
	m := make(map[string]NodeType, len(blockTags))
	for t, tag := range blockTags {
		m[tag] = t
	}
	return m
}()

// PresentationTag returns the tag a node type is rendered as, empty for types
// without an XML form.
func PresentationTag(t NodeType) string { return blockTags[t] }

// ReadDocument parses the XML form of a document. Unknown elements are
// rejected; character data becomes text leaves with surrounding
// formatting-only whitespace dropped.
func ReadDocument(r io.Reader, log *zap.Logger) (*Document, error) {
	src := etree.NewDocument()
	src.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := src.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to parse document: %w", err)
	}
	top := src.Root()
	if top == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	if tagTypes[top.Tag] != NodeRoot {
		return nil, fmt.Errorf("unexpected root element <%s>, want <%s>", top.Tag, blockTags[NodeRoot])
	}

	d := NewDocument(log)
	for _, a := range top.Attr {
		if d.root.attrs == nil {
			d.root.attrs = make(map[string]string)
		}
		d.root.attrs[a.Key] = a.Value
	}
	if err := d.readChildren(d.root, top); err != nil {
		return nil, err
	}
	log.Debug("Document loaded", zap.Int("nodes", len(d.nodes)))
	return d, nil
}

func (d *Document) readChildren(parent *Node, el *etree.Element) error {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			if strings.TrimSpace(t.Data) == "" {
				continue
			}
			d.AppendText(parent, t.Data)
		case *etree.Element:
			typ, known := tagTypes[t.Tag]
			if !known || typ == NodeRoot {
				return fmt.Errorf("unsupported element <%s> inside <%s>", t.Tag, el.Tag)
			}
			attrs := make(map[string]string, len(t.Attr))
			for _, a := range t.Attr {
				attrs[a.Key] = a.Value
			}
			n := d.AppendBlock(parent, typ, attrs)
			if err := d.readChildren(n, t); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteTo serializes the document back to its XML form using the
// presentation tag mapping.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	writeNode(out.CreateElement(blockTags[NodeRoot]), d.root)
	return out.WriteTo(w)
}

func writeNode(el *etree.Element, n *Node) {
	for _, k := range attrKeys(n.attrs) {
		el.CreateAttr(k, n.attrs[k])
	}
	for _, c := range n.children {
		if c.typ == NodeText {
			el.CreateText(c.text)
			continue
		}
		writeNode(el.CreateElement(blockTags[c.typ]), c)
	}
}

// Title returns the document's title attribute, empty when unset.
func (d *Document) Title() string { return d.root.Attr("title") }
