package params

import (
	"fmt"
)

var (
	ErrArchivePath = fmt.Errorf("путь к пакету не указан")
	ErrTooManyArgs = fmt.Errorf("можно указать только один пакет")
	ErrJobs        = fmt.Errorf("число работников должно быть больше нуля")
	ErrOutputDir   = fmt.Errorf("не могу определить директорию для распаковки")
)
