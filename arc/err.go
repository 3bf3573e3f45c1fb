package arc

import "github.com/gh0st17/upkextract/arc/internal/errors"

// Ошибки подготовки распаковки
var (
	ErrStaging     = errors.ErrStaging
	ErrOutputDir   = errors.ErrOutputDir
	ErrRemoveStage = errors.ErrRemoveStage
	ErrNotAbs      = errors.ErrNotAbs

	ErrStagingNotEmpty = errors.ErrStagingNotEmpty
)

// Ошибки просмотра
var ErrReadPathname = errors.ErrReadPathname
