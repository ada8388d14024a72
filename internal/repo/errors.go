package repo

import "errors"

// ErrItemNotFound is returned when an operation targets an item id or name key
// that does not exist.
var ErrItemNotFound = errors.New("item not found")

// ErrDuplicateItem is returned when an insert collides with an existing name
// key. Callers treat it as "merge instead", never as data corruption.
var ErrDuplicateItem = errors.New("item with the same name key already exists")
