package errors

import "errors"

// ErrPathNotFound is returned when a required input directory or file is absent.
var ErrPathNotFound = errors.New("required path not found")

// ErrIncorrectInput is returned when the user input is incorrect.
var ErrIncorrectInput = errors.New("incorrect input")

// ErrPreconditionFailed is returned when an operation is requested before
// the material it depends on exists.
var ErrPreconditionFailed = errors.New("precondition failed")

// ErrCommandFailed is returned when an external toolkit command exits non-zero.
var ErrCommandFailed = errors.New("external command failed")
