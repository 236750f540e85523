package errors

// Error is an immutable error which can be declared as a constant
type Error string

func (e Error) Error() string {
	return string(e)
}

// core error kinds of the storage and execution layers. errors which are
// meaningful only at one call site are declared next to their use instead.
const (
	ErrRecordNotFound   = Error("record not found")
	ErrPageNotExist     = Error("page does not exist")
	ErrColumnNotFound   = Error("column not found")
	ErrIncompatibleType = Error("incompatible type")
	ErrInternal         = Error("internal error")
)
