package types

type TypeID int

const (
	Invalid TypeID = iota
	Boolean
	Integer
	Float
	Varchar
	Decimal
)

// Size returns the number of bytes a value of this type occupies in the
// fixed length part of a stored record. Varchar and Decimal are not
// inlined, their fixed part is a four byte offset into the record.
func (t TypeID) Size() uint32 {
	switch t {
	case Boolean:
		return 1
	case Integer:
		return 4
	case Float:
		return 4
	case Varchar:
		return 4
	case Decimal:
		return 4
	}
	return 0
}

func (t TypeID) IsInlined() bool {
	return t != Varchar && t != Decimal
}

func (t TypeID) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Integer:
		return "INTEGER"
	case Float:
		return "FLOAT"
	case Varchar:
		return "VARCHAR"
	case Decimal:
		return "DECIMAL"
	}
	return "INVALID"
}
