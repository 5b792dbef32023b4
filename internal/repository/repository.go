package repository

import "errors"

// ErrNoTransition is returned when a guarded status update matched no row,
// meaning the post was not in the status the transition requires.
var ErrNoTransition = errors.New("post is not in the required status")
