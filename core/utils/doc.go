// Package utils provides small type-conversion helpers.
//
// They exist mainly to normalize loosely-typed inputs, such as JSON fields
// that may arrive as either a number or a string (e.g. a bucket's file
// size limit).
package utils
