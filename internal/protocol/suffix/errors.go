package suffix

import "errors"

var (
	ErrIdentifierTooLong     = errors.New("suffix: identifier longer than 255 bytes")
	ErrIdentifierNotByteSafe = errors.New("suffix: identifier character outside one-byte range")
	ErrTooShort              = errors.New("suffix: buffer too short for trailer")
	ErrMarkerMismatch        = errors.New("suffix: marker mismatch")
	ErrUnsupportedSchema     = errors.New("suffix: unsupported schema")
)
