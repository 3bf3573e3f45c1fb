package assemble

import "github.com/gh0st17/upkextract/arc/internal/errors"

var (
	ErrReadAssetDir = errors.ErrReadAssetDir
	ErrReadPathname = errors.ErrReadPathname
	ErrWriteAsset   = errors.ErrWriteAsset
	ErrWritePreview = errors.ErrWritePreview
	ErrWriteMeta    = errors.ErrWriteMeta
	ErrCreateDir    = errors.ErrCreateDir
)
