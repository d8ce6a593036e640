package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

var (
	IDSize     = 21
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewID returns a random identifier for a new row.
func NewID() string {
	return NewIDSize(IDSize)
}

func NewIDSize(size int) string {
	if size <= 0 {
		size = IDSize
	}

	return gonanoid.MustGenerate(idAlphabet, size)
}
