package logic

import "errors"

// ErrValidation marks malformed or missing input detected before any write.
// Handlers translate it to a 400; everything else surfaces as a 500.
var ErrValidation = errors.New("validation failed")
