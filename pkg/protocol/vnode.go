package protocol

import (
	"github.com/arbor-dev/arbor/pkg/vdom"
)

// nullMarker encodes a nil node.
const nullMarker = 0xFF

// EncodeNode encodes a VNode tree using the provided encoder.
// Handler refs do not cross the wire; only their presence does.
func EncodeNode(e *Encoder, node *vdom.VNode) {
	if node == nil {
		e.WriteByte(nullMarker)
		return
	}

	e.WriteByte(byte(node.Kind))
	e.WriteString(node.ID)

	switch node.Kind {
	case vdom.KindElement:
		e.WriteString(node.Tag)
		e.WriteString(node.Key)

		e.WriteUvarint(uint64(len(node.Attrs)))
		for i := range node.Attrs {
			encodeAttr(e, &node.Attrs[i])
		}

		e.WriteUvarint(uint64(len(node.Children)))
		for _, child := range node.Children {
			EncodeNode(e, child)
		}

	case vdom.KindText, vdom.KindRaw:
		e.WriteString(node.Text)

	case vdom.KindEmpty:
		// Identity only, no payload
	}
}

// DecodeNode decodes a VNode tree from the decoder, enforcing MaxNodeDepth.
func DecodeNode(d *Decoder) (*vdom.VNode, error) {
	return decodeNodeAtDepth(d, 0, MaxNodeDepth)
}

func decodeNodeAtDepth(d *Decoder, depth, maxDepth int) (*vdom.VNode, error) {
	if err := checkDepth(depth, maxDepth); err != nil {
		return nil, err
	}

	kindByte, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	if kindByte == nullMarker {
		return nil, nil
	}

	node := &vdom.VNode{Kind: vdom.VKind(kindByte)}
	node.ID, err = d.ReadString()
	if err != nil {
		return nil, err
	}

	switch node.Kind {
	case vdom.KindElement:
		node.Tag, err = d.ReadString()
		if err != nil {
			return nil, err
		}
		node.Key, err = d.ReadString()
		if err != nil {
			return nil, err
		}

		attrCount, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		if attrCount > 0 {
			node.Attrs = make([]vdom.Attr, attrCount)
			for i := 0; i < attrCount; i++ {
				if err := decodeAttr(d, &node.Attrs[i]); err != nil {
					return nil, err
				}
			}
		}

		childCount, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		if childCount > 0 {
			node.Children = make([]*vdom.VNode, childCount)
			for i := 0; i < childCount; i++ {
				child, err := decodeNodeAtDepth(d, depth+1, maxDepth)
				if err != nil {
					return nil, err
				}
				node.Children[i] = child
			}
		}

	case vdom.KindText, vdom.KindRaw:
		node.Text, err = d.ReadString()
		if err != nil {
			return nil, err
		}

	case vdom.KindEmpty:
		// Identity only, no payload

	default:
		return nil, ErrUnknownNodeKind
	}

	return node, nil
}

// encodeAttr encodes a single attribute.
// Format: kind byte + id + name + value + ref-presence bool.
func encodeAttr(e *Encoder, a *vdom.Attr) {
	e.WriteByte(byte(a.Kind))
	e.WriteString(a.ID)
	e.WriteString(a.Name)
	e.WriteString(a.Value)
	e.WriteBool(a.HasRef())
}

// decodeAttr decodes a single attribute. A handler whose ref presence
// crossed the wire is rebuilt with a passthrough projection: presence
// survives, the projection itself does not.
func decodeAttr(d *Decoder, a *vdom.Attr) error {
	kindByte, err := d.ReadByte()
	if err != nil {
		return err
	}
	a.Kind = vdom.AttrKind(kindByte)

	if a.ID, err = d.ReadString(); err != nil {
		return err
	}
	if a.Name, err = d.ReadString(); err != nil {
		return err
	}
	if a.Value, err = d.ReadString(); err != nil {
		return err
	}
	hasRef, err := d.ReadBool()
	if err != nil {
		return err
	}
	if hasRef {
		a.Ref = preservedRef
	}
	return nil
}

// preservedRef stands in for a projection that did not cross the wire.
func preservedRef(payload []byte) []byte {
	return payload
}
