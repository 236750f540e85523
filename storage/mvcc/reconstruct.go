package mvcc

import (
	"github.com/give-a-mocha/DB2025/common"
	"github.com/give-a-mocha/DB2025/storage/table/schema"
	"github.com/give-a-mocha/DB2025/storage/tuple"
)

// Reconstruct rolls the base tuple image back through a version chain.
// undoLogs must be ordered newest first; each entry is applied in turn
// until the image matches the version the oldest entry describes.
// A deleted base means the tuple is absent, whatever the chain holds;
// rolling back past a delete takes a chain entry that restores the
// prior image. The second return value is false when the tuple does
// not exist at that version.
func Reconstruct(schema_ *schema.Schema, base *tuple.Tuple, baseMeta TupleMeta, undoLogs []UndoLog) (*tuple.Tuple, bool) {
	if baseMeta.IsDeleted {
		return nil, false
	}
	if len(undoLogs) == 0 {
		return base.Copy(), true
	}

	reconstructed := base.Copy()
	for _, undoLog := range undoLogs {
		if undoLog.IsDeleted {
			return nil, false
		}

		if undoLog.Snapshot != nil {
			reconstructed = undoLog.Snapshot.Copy()
			continue
		}

		valueIdx := 0
		for colIdx, modified := range undoLog.ModifiedFields {
			if !modified {
				continue
			}
			common.Assert(valueIdx < len(undoLog.Values), "undo log values must cover the modified columns")
			reconstructed.SetValue(schema_, uint32(colIdx), undoLog.Values[valueIdx])
			valueIdx++
		}
	}

	return reconstructed, true
}
