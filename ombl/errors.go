package ombl

import "errors"

var (
	// ErrRepositoryNotFound means the target dir is not a git repository.
	ErrRepositoryNotFound = errors.New("repository not found")
	// ErrRepositoryEmpty means the repository has no reachable history.
	ErrRepositoryEmpty = errors.New("repository has no commits")
	// ErrFileNotFound means the file is absent from the head tree and no
	// commit ever touched it.
	ErrFileNotFound = errors.New("file not found in repository")
	// ErrInvalidDateFormat means a since/until value matched no supported
	// date format.
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrInvalidQuery means the query arguments fail the preconditions.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrBackendIO wraps any unexpected read failure from the backend.
	ErrBackendIO = errors.New("backend read failed")
)
