package types

import (
	"bytes"
	"encoding/binary"
)

// OID identifies a table. Every heap file on disk belongs to exactly
// one OID and the pair (OID, PageID) names a page globally.
type OID uint32

const InvalidOID = OID(0xffffffff)

func (oid OID) IsValid() bool {
	return oid != InvalidOID
}

// Serialize casts it to []byte
func (oid OID) Serialize() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, oid)
	return buf.Bytes()
}

// NewOIDFromBytes creates an OID from []byte
func NewOIDFromBytes(data []byte) (ret OID) {
	binary.Read(bytes.NewBuffer(data), binary.LittleEndian, &ret)
	return ret
}
