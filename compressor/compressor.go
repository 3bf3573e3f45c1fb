// Пакет compressor предоставляет распаковку сжатых потоков
// с определением типа сжатия по сигнатуре
package compressor

import (
	"bufio"
	"bytes"
	"io"

	"github.com/gh0st17/upkextract/errtype"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const BufferSize int = 262144 // 256K

type Type byte // Тип сжатия

const (
	Unknown Type = iota
	GZip
	Zstd
	LZ4
)

// Реализация fmt.Stringer
func (ct Type) String() string {
	if int(ct) >= len(typeNames) {
		return typeNames[Unknown]
	}
	return typeNames[ct]
}

var typeNames = [...]string{"Unknown", "GZip", "Zstd", "LZ4"}

// Сигнатуры потоков
var Signatures = map[Type][]byte{
	GZip: {0x1f, 0x8b},
	Zstd: {0x28, 0xb5, 0x2f, 0xfd},
	LZ4:  {0x04, 0x22, 0x4d, 0x18},
}

const maxSignatureLen = 4

// Определяет тип сжатия по первым байтам потока
func Detect(header []byte) Type {
	switch {
	case bytes.HasPrefix(header, Signatures[GZip]):
		return GZip
	case bytes.HasPrefix(header, Signatures[Zstd]):
		return Zstd
	case bytes.HasPrefix(header, Signatures[LZ4]):
		return LZ4
	default:
		return Unknown
	}
}

// Читатель распакованного потока
type Reader struct {
	reader io.ReadCloser
	typ    Type
}

// Возвращает нового читателя, тип сжатия
// определяется по сигнатуре потока r
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, BufferSize)

	header, err := br.Peek(maxSignatureLen)
	if len(header) == 0 {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, errtype.ErrDecode(ErrReadHeader.Error(), err)
	}

	return NewTypedReader(Detect(header), br)
}

// Возвращает нового читателя типа typ
func NewTypedReader(typ Type, r io.Reader) (*Reader, error) {
	reader, err := newReader(typ, r)
	if err != nil {
		if err == ErrUnknownComp {
			return nil, errtype.ErrDecode(ErrUnknownComp.Error(), nil)
		}
		return nil, errtype.ErrDecode(ErrDecompCreate.Error(), err)
	}

	return &Reader{
		reader: reader,
		typ:    typ,
	}, nil
}

// Выбирает читателя согласно typ
func newReader(typ Type, r io.Reader) (io.ReadCloser, error) {
	switch typ {
	case GZip:
		return gzip.NewReader(r)
	case Zstd:
		z, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return z.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, ErrUnknownComp
	}
}

// Ошибки нижележащего декомпрессора помечаются как ошибки декодирования
func (rd *Reader) Read(p []byte) (int, error) {
	n, err := rd.reader.Read(p)
	if err != nil && err != io.EOF {
		return n, errtype.ErrDecode(ErrReadStream.Error(), err)
	}
	return n, err
}

// Дочитывает поток до конца. Контрольная сумма и длина
// из концевика gzip проверяются только при чтении до EOF,
// поэтому поток нужно дочитать после того, как читатель
// контейнера остановился на блоках конца архива
func (rd *Reader) Drain() error {
	_, err := io.Copy(io.Discard, rd)
	return err
}

func (rd *Reader) Type() Type { return rd.typ }

func (rd *Reader) Close() error { return rd.reader.Close() }
