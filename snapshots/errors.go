package snapshots

import "errors"

var (
	ErrSnapshotNotFound = errors.New("no snapshot stored for the dataset")
	ErrVersionNotFound  = errors.New("the requested snapshot version does not exist")
	ErrSealVerifyFailed = errors.New("the seal signature verification failed")
	ErrSealMalformed    = errors.New("the sealed snapshot message is malformed")
)
