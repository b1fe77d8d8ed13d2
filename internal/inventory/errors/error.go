// Package errors provides custom error types for inventory operations.
package errors

import "errors"

var ErrNotFound = errors.New("record not found")
var ErrValidation = errors.New("invalid record field")
var ErrCorruptLine = errors.New("corrupt line")
var ErrIO = errors.New("i/o failure")

var ErrNilRecord = errors.New("record is nil")
var ErrInvalidID = errors.New("invalid record id")
var ErrDuplicateID = errors.New("duplicate record id")
var ErrIDExhausted = errors.New("record ids exhausted")
