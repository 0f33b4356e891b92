package protocol

import (
	"github.com/arbor-dev/arbor/pkg/vdom"
)

// PatchFrame is the wire envelope for one diff cycle's patch sequence.
// Seq orders frames; patches within a frame apply strictly in order.
type PatchFrame struct {
	Seq     uint64
	Patches []vdom.Patch
}

// EncodePatches encodes a patch frame to bytes.
func EncodePatches(pf *PatchFrame) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, pf)
	return e.Bytes()
}

// EncodePatchesTo encodes a patch frame using the provided encoder.
func EncodePatchesTo(e *Encoder, pf *PatchFrame) {
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))
	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
}

// DecodePatches decodes a patch frame from bytes. Trailing bytes after the
// frame are an error; the stream is versioned by its op values and unknown
// ops fail the decode.
func DecodePatches(data []byte) (*PatchFrame, error) {
	d := NewDecoder(data)
	pf, err := DecodePatchesFrom(d)
	if err != nil {
		return nil, err
	}
	if !d.EOF() {
		return nil, ErrTrailingData
	}
	return pf, nil
}

// DecodePatchesFrom decodes a patch frame from a decoder.
func DecodePatchesFrom(d *Decoder) (*PatchFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	patches := make([]vdom.Patch, count)
	for i := 0; i < count; i++ {
		if err := decodePatch(d, &patches[i]); err != nil {
			return nil, err
		}
	}
	return &PatchFrame{Seq: seq, Patches: patches}, nil
}

// encodePatch encodes a single patch.
// Format: op byte + target id + op-specific payload.
func encodePatch(e *Encoder, p *vdom.Patch) {
	e.WriteByte(byte(p.Op))
	e.WriteString(p.NodeID)

	switch p.Op {
	case vdom.PatchAddRoot:
		EncodeNode(e, p.Node)

	case vdom.PatchReplaceNode:
		EncodeNode(e, p.Node)

	case vdom.PatchInsertNode:
		e.WriteString(p.ParentID)
		e.WriteUvarint(uint64(p.Index))
		EncodeNode(e, p.Node)

	case vdom.PatchRemoveNode:
		// Target id is sufficient

	case vdom.PatchSetText, vdom.PatchSetRaw:
		e.WriteString(p.NewID)
		e.WriteString(p.Value)

	case vdom.PatchAddAttr, vdom.PatchAddHandler:
		attr := p.Attr
		encodeAttr(e, &attr)

	case vdom.PatchSetAttr:
		e.WriteString(p.Name)
		e.WriteString(p.Value)

	case vdom.PatchRemoveAttr, vdom.PatchRemoveHandler:
		e.WriteString(p.Name)

	case vdom.PatchSetHandler:
		e.WriteString(p.Name)
		e.WriteString(p.Value)
		e.WriteBool(p.HasRef)

	case vdom.PatchInsertNodes:
		e.WriteString(p.ParentID)
		e.WriteUvarint(uint64(p.Index))
		e.WriteUvarint(uint64(len(p.Nodes)))
		for _, node := range p.Nodes {
			EncodeNode(e, node)
		}

	case vdom.PatchRemoveNodes:
		e.WriteUvarint(uint64(len(p.NodeIDs)))
		for _, id := range p.NodeIDs {
			e.WriteString(id)
		}

	case vdom.PatchInsertTexts, vdom.PatchInsertRaws:
		e.WriteString(p.ParentID)
		e.WriteUvarint(uint64(p.Index))
		e.WriteUvarint(uint64(len(p.Texts)))
		for _, tc := range p.Texts {
			e.WriteString(tc.ID)
			e.WriteString(tc.Value)
		}
	}
}

// decodePatch decodes a single patch.
func decodePatch(d *Decoder, p *vdom.Patch) error {
	opByte, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = vdom.PatchOp(opByte)

	if p.NodeID, err = d.ReadString(); err != nil {
		return err
	}

	switch p.Op {
	case vdom.PatchAddRoot, vdom.PatchReplaceNode:
		p.Node, err = decodeNodeAtDepth(d, 0, MaxPatchDepth)
		return err

	case vdom.PatchInsertNode:
		if p.ParentID, err = d.ReadString(); err != nil {
			return err
		}
		idx, err := d.ReadUvarint()
		if err != nil {
			return err
		}
		p.Index = int(idx)
		p.Node, err = decodeNodeAtDepth(d, 0, MaxPatchDepth)
		return err

	case vdom.PatchRemoveNode:
		return nil

	case vdom.PatchSetText, vdom.PatchSetRaw:
		if p.NewID, err = d.ReadString(); err != nil {
			return err
		}
		p.Value, err = d.ReadString()
		return err

	case vdom.PatchAddAttr, vdom.PatchAddHandler:
		if err = decodeAttr(d, &p.Attr); err != nil {
			return err
		}
		p.Name = p.Attr.Name
		p.Value = p.Attr.Value
		p.HasRef = p.Attr.HasRef()
		return nil

	case vdom.PatchSetAttr:
		if p.Name, err = d.ReadString(); err != nil {
			return err
		}
		p.Value, err = d.ReadString()
		return err

	case vdom.PatchRemoveAttr, vdom.PatchRemoveHandler:
		p.Name, err = d.ReadString()
		return err

	case vdom.PatchSetHandler:
		if p.Name, err = d.ReadString(); err != nil {
			return err
		}
		if p.Value, err = d.ReadString(); err != nil {
			return err
		}
		p.HasRef, err = d.ReadBool()
		return err

	case vdom.PatchInsertNodes:
		if p.ParentID, err = d.ReadString(); err != nil {
			return err
		}
		idx, err := d.ReadUvarint()
		if err != nil {
			return err
		}
		p.Index = int(idx)
		count, err := d.ReadCollectionCount()
		if err != nil {
			return err
		}
		p.Nodes = make([]*vdom.VNode, count)
		for i := 0; i < count; i++ {
			if p.Nodes[i], err = decodeNodeAtDepth(d, 0, MaxPatchDepth); err != nil {
				return err
			}
		}
		return nil

	case vdom.PatchRemoveNodes:
		count, err := d.ReadCollectionCount()
		if err != nil {
			return err
		}
		p.NodeIDs = make([]string, count)
		for i := 0; i < count; i++ {
			if p.NodeIDs[i], err = d.ReadString(); err != nil {
				return err
			}
		}
		return nil

	case vdom.PatchInsertTexts, vdom.PatchInsertRaws:
		if p.ParentID, err = d.ReadString(); err != nil {
			return err
		}
		idx, err := d.ReadUvarint()
		if err != nil {
			return err
		}
		p.Index = int(idx)
		count, err := d.ReadCollectionCount()
		if err != nil {
			return err
		}
		p.Texts = make([]vdom.TextContent, count)
		for i := 0; i < count; i++ {
			if p.Texts[i].ID, err = d.ReadString(); err != nil {
				return err
			}
			if p.Texts[i].Value, err = d.ReadString(); err != nil {
				return err
			}
		}
		return nil

	default:
		return ErrUnknownPatchOp
	}
}
