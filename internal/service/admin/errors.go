package admin

import "errors"

var (
	ErrInvalidTrain = errors.New("invalid train")
)
