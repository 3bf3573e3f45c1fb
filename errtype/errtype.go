// Пакет errtype описывает типизированные ошибки программы
// и соответствующие им коды завершения процесса
package errtype

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Маркеры видов ошибок, проверяются через errors.Is
var (
	RuntimeError      = errors.New("runtime error")
	DecodeError       = errors.New("decode error")
	UnpackError       = errors.New("unpack error")
	EmptyArchiveError = errors.New("empty archive")
	MissingPathError  = errors.New("missing pathname")
	AssetWriteError   = errors.New("asset write error")
	PartialError      = errors.New("partial extraction")
)

// Коды завершения
const (
	CodeRuntime = iota + 1
	CodeDecode
	CodeUnpack
	CodeEmpty
	CodeAsset
)

type Error struct {
	message string
	err     error
	code    int
}

func (e Error) Error() string {
	var eMessage string
	switch {
	case e.err == nil:
		{
		}
	case errors.Is(e.err, gzip.ErrHeader) || errors.Is(e.err, zstd.ErrMagicMismatch):
		eMessage = "ошибка заголовка"
	case errors.Is(e.err, gzip.ErrChecksum):
		eMessage = "неверная контрольная сумма"
	case errors.Is(e.err, os.ErrPermission):
		eMessage = fmt.Sprint("нет доступа: ", e.err)
	case errors.Is(e.err, os.ErrExist):
		eMessage = "файл уже существует"
	case errors.Is(e.err, os.ErrNotExist):
		eMessage = "файл не существует"
	case errors.Is(e.err, io.ErrUnexpectedEOF):
		eMessage = "неожиданный конец файла"
	default:
		eMessage = e.err.Error()
	}

	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, eMessage)
	} else {
		return fmt.Sprint(e.message)
	}
}

func (e Error) Unwrap() error { return e.err }

// Код завершения процесса для этой ошибки
func (e Error) Code() int { return e.code }

func newError(kind error, code int, message string, err error) error {
	return errors.Mark(&Error{message: message, err: err, code: code}, kind)
}

func ErrRuntime(message string, err error) error {
	return newError(RuntimeError, CodeRuntime, message, err)
}

// Входной поток не является поддерживаемым сжатым потоком
func ErrDecode(message string, err error) error {
	return newError(DecodeError, CodeDecode, message, err)
}

// Поток tar поврежден или запись во временную директорию не удалась
func ErrUnpack(message string, err error) error {
	return newError(UnpackError, CodeUnpack, message, err)
}

// В архиве нет ни одной директории ассета
func ErrEmpty(message string) error {
	return newError(EmptyArchiveError, CodeEmpty, message, nil)
}

// В директории ассета отсутствует pathname
func ErrMissingPath(dir string) error {
	return newError(MissingPathError, CodeAsset,
		fmt.Sprintf("путь к файлу отсутствует в '%s'", dir), nil)
}

// Ошибка создания директории или записи файла ассета
func ErrAssetWrite(dir string, err error) error {
	return newError(AssetWriteError, CodeAsset,
		fmt.Sprintf("ошибка записи ассета '%s'", dir), err)
}

// Часть ассетов не удалось распаковать
func ErrPartial(failed, total int) error {
	return newError(PartialError, CodeAsset,
		fmt.Sprintf("не распаковано ассетов: %d из %d", failed, total), nil)
}

// Добавляет к ошибке err контекст ctx, сохраняя
// возможность проверить обе ошибки через errors.Is
func Join(ctx error, err error) error {
	if err == nil {
		return ctx
	}
	return errors.Mark(errors.Wrap(err, ctx.Error()), ctx)
}

// Возвращает код завершения для ошибки err. Ошибка
// декодирования сохраняет свой код, даже если она
// обернута ошибкой распаковки контейнера
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, DecodeError) {
		return CodeDecode
	}

	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return CodeRuntime
}

// Печатает ошибку и завершает процесс с ее кодом
func HandleError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(ExitCode(err))
}
