package types

import "time"

// ImageRecord describes a clipboard image after it has been persisted to the
// vault as a PNG file. Records are immutable once produced; two captures of
// identical bytes resolve to the same Path and Hash.
type ImageRecord struct {
	// Path is the absolute location of the stored PNG file.
	Path string `json:"path"`

	// Size is the on-disk byte count, read back from file metadata after the
	// write (so external changes to the file are reflected, not assumed).
	Size uint64 `json:"size"`

	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`

	// Hash is the hex content hash the file is named by.
	Hash string `json:"hash,omitempty"`

	// Captured is when this record was produced, not when the file was
	// first written.
	Captured time.Time `json:"captured,omitempty"`
}

// Equal reports whether two records refer to the same image content.
func (r *ImageRecord) Equal(other *ImageRecord) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Hash == other.Hash
}
