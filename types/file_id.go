package types

// FileID identifies one open record file at the disk manager
type FileID int32

// InvalidFileID represents an invalid file id
const InvalidFileID = FileID(-1)

// IsValid checks if id is valid
func (id FileID) IsValid() bool {
	return id >= 0
}
