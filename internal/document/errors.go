package document

import "errors"

var (
	ErrUnknownNodeType = errors.New("unknown node type")
	ErrNotInsertable   = errors.New("node type cannot be inserted")
	ErrSchemaViolation = errors.New("document does not match schema")
	ErrInvalidDocument = errors.New("invalid document")
)
