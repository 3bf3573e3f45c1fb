package unpack

import "github.com/gh0st17/upkextract/arc/internal/errors"

var (
	ErrReadEntry   = errors.ErrReadEntry
	ErrCreateEntry = errors.ErrCreateEntry
	ErrWriteEntry  = errors.ErrWriteEntry
	ErrUnsafePath  = errors.ErrUnsafePath
	ErrCreateDir   = errors.ErrCreateDir
)
