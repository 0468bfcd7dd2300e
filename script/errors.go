package script

import "errors"

var (
	ErrMalformedToken = errors.New("malformed script token")
	ErrUnexpectedEOF  = errors.New("script ended before all declared operations and queries were read")
	ErrUnknownOp      = errors.New("unknown operation kind")
	ErrStoreNotEmpty  = errors.New("scripts must run against an empty store")
	ErrCBORCodec      = errors.New("cbor codec configuration failed")
)
