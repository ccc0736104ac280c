package query

import "errors"

var (
	ErrTrainNotFound = errors.New("train not found")
)
