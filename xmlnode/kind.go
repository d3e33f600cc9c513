package xmlnode

import (
	"strconv"

	"github.com/chrisuehlinger/xmlnode/dom"
)

// Kind classifies a node. The numeric values are the W3C DOM node type ids.
type Kind uint16

const (
	KindUnknown               Kind = 0
	KindElement               Kind = 1
	KindAttribute             Kind = 2
	KindText                  Kind = 3
	KindCDATASection          Kind = 4
	KindEntityReference       Kind = 5
	KindEntity                Kind = 6
	KindProcessingInstruction Kind = 7
	KindComment               Kind = 8
	KindDocument              Kind = 9
	KindDocumentType          Kind = 10
	KindDocumentFragment      Kind = 11
	KindNotation              Kind = 12
)

var kindNames = [...]string{
	KindUnknown:               "unknown",
	KindElement:               "element",
	KindAttribute:             "attribute",
	KindText:                  "text",
	KindCDATASection:          "cdata-section",
	KindEntityReference:       "entity-reference",
	KindEntity:                "entity",
	KindProcessingInstruction: "processing-instruction",
	KindComment:               "comment",
	KindDocument:              "document",
	KindDocumentType:          "document-type",
	KindDocumentFragment:      "document-fragment",
	KindNotation:              "notation",
}

// KindByID returns the Kind with the given id. Ids outside 1..12 return
// KindUnknown and false.
func KindByID(id int) (Kind, bool) {
	if id < int(KindElement) || id > int(KindNotation) {
		return KindUnknown, false
	}
	return Kind(id), true
}

// ID returns the numeric id of the kind.
func (k Kind) ID() int {
	return int(k)
}

// Valid reports whether k is one of the twelve known kinds.
func (k Kind) Valid() bool {
	return k >= KindElement && k <= KindNotation
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// kindOf classifies a native node.
func kindOf(n *dom.Node) Kind {
	k, _ := KindByID(int(n.NodeType()))
	return k
}
