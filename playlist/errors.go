package playlist

import "errors"

var (
	ErrHandleRange    = errors.New("handle does not identify a version in the store")
	ErrPositionRange  = errors.New("position is not within the playlist")
	ErrInvalidRange   = errors.New("range start is after range end")
	ErrLengthOverflow = errors.New("concatenated playlist length exceeds 256 bits")
	ErrSegmentHeight  = errors.New("segment height is out of range")
)
