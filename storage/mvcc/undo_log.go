package mvcc

import (
	"github.com/give-a-mocha/DB2025/storage/tuple"
	"github.com/give-a-mocha/DB2025/types"
)

// TupleMeta is the version stamp carried by the newest tuple image.
type TupleMeta struct {
	Ts        types.Timestamp
	IsDeleted bool
}

// UndoLog is one entry of a version chain. It either marks a deletion
// (the record did not exist before the write it undoes, as with an
// insert), carries a full before image in Snapshot (undoing a delete
// restores the prior image this way), or records a partial delta:
// ModifiedFields flags the columns the entry rewrites and Values holds
// their before values in column order. Ts is the timestamp of the
// write the entry undoes, so rolling back every entry younger than a
// snapshot reproduces the image at that snapshot.
type UndoLog struct {
	IsDeleted      bool
	ModifiedFields []bool
	Values         []types.Value
	Snapshot       *tuple.Tuple
	Ts             types.Timestamp
}
