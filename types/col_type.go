package types

// ColType is the type tag of a column value
type ColType int32

const (
	Invalid ColType = iota
	Integer
	Float
	Varchar
)

// Size returns the fixed serialized byte size of the type.
// Varchar columns carry their own declared length, so 0 is returned.
func (t ColType) Size() uint32 {
	switch t {
	case Integer:
		return 4
	case Float:
		return 4
	default:
		return 0
	}
}

func (t ColType) String() string {
	switch t {
	case Integer:
		return "INT"
	case Float:
		return "FLOAT"
	case Varchar:
		return "STRING"
	default:
		return "INVALID"
	}
}
