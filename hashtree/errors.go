package hashtree

import "errors"

var (
	ErrEmptyInput      = errors.New("cannot build a tree from zero records")
	ErrRecordNotFound  = errors.New("record identifier not present in the tree")
	ErrDuplicateRecord = errors.New("record identifier already present in the tree")
	ErrRecordSerialize = errors.New("record canonical serialization failed")
)
