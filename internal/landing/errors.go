package landing

import "errors"

var (
	ErrUnknownSection         = errors.New("unknown section")
	ErrUnknownColor           = errors.New("unknown color slot")
	ErrUnknownList            = errors.New("unknown list field")
	ErrUnknownMediaField      = errors.New("unknown media field")
	ErrInvalidPatch           = errors.New("invalid patch")
	ErrInvalidFloatingSection = errors.New("section cannot feed the floating button")
	ErrNoMedia                = errors.New("media field is empty")
	ErrInvalidMediaKey        = errors.New("invalid media key")
	ErrDuplicateSectionKey    = errors.New("section already registered")
)
