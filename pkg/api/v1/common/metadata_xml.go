package common

import (
	"encoding/xml"
	"sort"

	"github.com/stratolab/strato/internal/db/models"
)

// XML namespaces attached to encoded metadata documents.
const (
	XMLNSV10 = "http://docs.rackspacecloud.com/servers/api/v1.0"
	XMLNSV11 = "http://docs.openstack.org/compute/api/v1.1"
)

// MetadataXMLCodec translates instance metadata between its in-memory
// map form and the wire XML representation:
//
//	<metadata xmlns="...">
//	  <meta key="K1">V1</meta>
//	</metadata>
//
// and, for the single-item shape, a bare <meta> element. The codec is
// stateless; every method is a pure function over its input.
type MetadataXMLCodec struct {
	Namespace string
}

// NewMetadataXMLCodec returns a codec using the v1.1 namespace.
func NewMetadataXMLCodec() MetadataXMLCodec {
	return MetadataXMLCodec{Namespace: XMLNSV11}
}

// xmlNode is a generic element tree used on the decode side. The codec
// only ever inspects element names, the key attribute and text content.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// extractMetadata builds a mapping from the meta elements among nodes.
// Duplicate keys resolve to the last occurrence in document order.
func extractMetadata(nodes []xmlNode) models.Metadata {
	metadata := models.Metadata{}
	for i := range nodes {
		if nodes[i].XMLName.Local != "meta" {
			continue
		}
		metadata[nodes[i].attr("key")] = nodes[i].Content
	}
	return metadata
}

func parseDocument(data []byte) (*xmlNode, error) {
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, &MalformedXMLError{Err: err}
	}
	return &root, nil
}

// DecodeContainer parses a <metadata> document into a mapping. A
// well-formed document whose root is not a metadata element decodes to
// an empty mapping rather than an error; XML that does not parse yields
// a MalformedXMLError.
func (c MetadataXMLCodec) DecodeContainer(data []byte) (models.Metadata, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if root.XMLName.Local != "metadata" {
		return models.Metadata{}, nil
	}
	return extractMetadata(root.Children), nil
}

// DecodeItem parses a standalone <meta> document into a mapping with at
// most one entry.
func (c MetadataXMLCodec) DecodeItem(data []byte) (models.Metadata, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	return extractMetadata([]xmlNode{*root}), nil
}

type metaElement struct {
	XMLName   xml.Name `xml:"meta"`
	Namespace string   `xml:"xmlns,attr,omitempty"`
	Key       string   `xml:"key,attr"`
	Value     string   `xml:",chardata"`
}

type metadataElement struct {
	XMLName   xml.Name      `xml:"metadata"`
	Namespace string        `xml:"xmlns,attr,omitempty"`
	Items     []metaElement `xml:"meta"`
}

// EncodeContainer renders a mapping as a <metadata> document with the
// codec namespace on the root. Entries are emitted in sorted key order.
func (c MetadataXMLCodec) EncodeContainer(metadata models.Metadata) (string, error) {
	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	doc := metadataElement{Namespace: c.Namespace}
	for _, key := range keys {
		doc.Items = append(doc.Items, metaElement{Key: key, Value: metadata[key]})
	}

	out, err := xml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return xml.Header + string(out), nil
}

// EncodeItem renders a single entry as a standalone <meta> document
// with the codec namespace on the root.
func (c MetadataXMLCodec) EncodeItem(key, value string) (string, error) {
	out, err := xml.Marshal(metaElement{Namespace: c.Namespace, Key: key, Value: value})
	if err != nil {
		return "", err
	}
	return xml.Header + string(out), nil
}

// EncodeNone is the fallback encode path for operations that produce no
// response body, such as delete.
func (c MetadataXMLCodec) EncodeNone() string {
	return ""
}
