package compressor

import (
	"errors"
)

var (
	ErrDecompCreate = errors.New("не могу создать новый декомпрессор")
	ErrUnknownComp  = errors.New("неизвестный тип сжатия")
	ErrReadHeader   = errors.New("не могу прочитать сигнатуру потока")
	ErrReadStream   = errors.New("ошибка чтения сжатого потока")
)
