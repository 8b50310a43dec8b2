package directory

import "errors"

// ErrNotFound is returned by mutators addressing an id that does not
// exist in the collection.
var ErrNotFound = errors.New("client not found")

// ErrInvalidActivityType is returned by AddActivity when the type is
// outside the known kinds.
var ErrInvalidActivityType = errors.New("invalid activity type")
