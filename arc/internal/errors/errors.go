// Пакет errors предоставляет переменные и функции
// для описания внутренних ошибок
package errors

import (
	"fmt"
)

// Ошибки распаковки контейнера
var (
	ErrReadEntry   = fmt.Errorf("ошибка чтения записи архива")
	ErrCreateEntry = fmt.Errorf("не могу создать файл во временной директории")
	ErrWriteEntry  = fmt.Errorf("ошибка записи файла во временную директорию")

	ErrUnsafePath = func(path string) error {
		return fmt.Errorf("небезопасный путь '%s' в архиве", path)
	}

	ErrCreateDir = func(path string) error {
		return fmt.Errorf("не могу создать директорию '%s'", path)
	}
)

// Ошибки поиска ассетов
var (
	ErrReadStaging = fmt.Errorf("не могу прочитать временную директорию")
	ErrNoAssets    = fmt.Errorf("в архиве нет ассетов")
)

// Ошибки сборки ассета
var (
	ErrReadAssetDir = fmt.Errorf("не могу прочитать директорию ассета")
	ErrReadPathname = fmt.Errorf("не могу прочитать pathname")
	ErrWriteAsset   = fmt.Errorf("ошибка записи ассета")
	ErrWritePreview = fmt.Errorf("ошибка записи превью")
	ErrWriteMeta    = fmt.Errorf("ошибка записи метаданных")
	ErrWorkerPanic  = fmt.Errorf("аварийное завершение обработки ассета")
)

// Общие ошибки
var (
	ErrStaging     = fmt.Errorf("не могу создать временную директорию")
	ErrOutputDir   = fmt.Errorf("не могу создать директорию для распаковки")
	ErrRemoveStage = fmt.Errorf("не могу удалить временную директорию")
	ErrNotAbs      = func(path string) error {
		return fmt.Errorf("путь '%s' должен быть абсолютным", path)
	}
	ErrStagingNotEmpty = func(path string) error {
		return fmt.Errorf("временная директория '%s' не пуста", path)
	}
)
