package executors

import (
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
)

// Executor is the iterator every operator implements. The driving loop
// is Begin, then Next and Advance until End reports true.
//
// Operators that produce no rows, like Update, do their work in a
// single Next call and report End afterwards.
type Executor interface {
	// Begin opens the operator and positions it on its first tuple.
	Begin() error
	// Advance moves to the next tuple.
	Advance() error
	// End reports whether the operator is exhausted.
	End() bool
	// Next returns the tuple the operator is currently positioned on.
	Next() (*tuple.Tuple, error)
	// TupleLen returns the byte length of the produced tuples.
	TupleLen() uint32
	// Schema describes the produced tuples. Operators without an
	// output schema return an error.
	Schema() (*schema.Schema, error)
}
