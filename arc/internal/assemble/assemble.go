// Пакет assemble собирает один ассет из его директории во
// временной директории: определяет итоговый путь по pathname и
// записывает содержимое, превью и метаданные
package assemble

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/gh0st17/upkextract/arc/internal/scan"
	"github.com/gh0st17/upkextract/console"
	"github.com/gh0st17/upkextract/errtype"
	"github.com/gh0st17/upkextract/filesystem"
	"github.com/spf13/afero"
)

// Имена файлов в директории ассета
const (
	AssetName    = "asset"
	PathnameName = "pathname"
	MetaName     = "asset.meta"
	PreviewName  = "preview.png"
)

// Суффиксы соседних файлов
const (
	PreviewSuffix = "_preview"
	PreviewExt    = ".png"
	MetaSuffix    = ".meta"
)

type Kind byte // Вид файла в директории ассета

const (
	Unrecognized Kind = iota
	Payload
	Pathname
	Metadata
	Preview
)

// Реализация fmt.Stringer
func (k Kind) String() string {
	return [...]string{"unrecognized", "payload", "pathname", "metadata", "preview"}[k]
}

// Определяет вид файла по точному имени
func Classify(name string) Kind {
	switch name {
	case AssetName:
		return Payload
	case PathnameName:
		return Pathname
	case MetaName:
		return Metadata
	case PreviewName:
		return Preview
	default:
		return Unrecognized
	}
}

// Параметры сборки, общие для всех ассетов
type Options struct {
	OutputDir   string // Абсолютный путь корня вывода
	EmitMeta    bool   // Писать <путь>.meta
	EmitPreview bool   // Писать <путь без расширения>_preview.png
}

// Результат сборки ассета
type Output struct {
	Path    string // Итоговый путь ассета
	Written bool   // Записан ли основной файл
	Bytes   int64  // Всего записано байт
}

type member struct {
	path string
	size int64
}

// Найденные файлы ассета, отсутствующий файл имеет пустой path
type members [Preview + 1]member

// Собирает ассет из директории dir
func Assemble(fsys afero.Fs, dir scan.AssetDir, opts Options) (out Output, err error) {
	m, err := readMembers(fsys, dir)
	if err != nil {
		return out, errtype.ErrAssetWrite(dir.Name, errtype.Join(ErrReadAssetDir, err))
	}

	if m[Pathname].path == "" {
		return out, errtype.ErrMissingPath(dir.Name)
	}

	raw, err := afero.ReadFile(fsys, m[Pathname].path)
	if err != nil {
		return out, errtype.ErrAssetWrite(dir.Name, errtype.Join(ErrReadPathname, err))
	}

	rel := filesystem.Clean(ParsePathname(raw))
	if rel == "" {
		return out, errtype.ErrMissingPath(dir.Name)
	}
	out.Path = filepath.Join(opts.OutputDir, filepath.FromSlash(rel))

	parent := filepath.Dir(out.Path)
	if err = filesystem.CreatePath(fsys, parent); err != nil {
		return out, errtype.ErrAssetWrite(dir.Name, errtype.Join(ErrCreateDir(parent), err))
	}

	// Ассеты нулевого размера описывают директории
	// проекта и как файлы не создаются
	if m[Payload].size > 0 {
		if err = out.write(fsys, m[Payload].path, out.Path); err != nil {
			return out, errtype.ErrAssetWrite(dir.Name, errtype.Join(ErrWriteAsset, err))
		}
		out.Written = true
	}

	if opts.EmitPreview && m[Preview].size > 0 {
		if err = out.write(fsys, m[Preview].path, PreviewPath(out.Path)); err != nil {
			return out, errtype.ErrAssetWrite(dir.Name, errtype.Join(ErrWritePreview, err))
		}
	}

	if opts.EmitMeta && m[Metadata].size > 0 {
		if err = out.write(fsys, m[Metadata].path, MetaPath(out.Path)); err != nil {
			return out, errtype.ErrAssetWrite(dir.Name, errtype.Join(ErrWriteMeta, err))
		}
	}

	return out, nil
}

func (out *Output) write(fsys afero.Fs, src, dst string) error {
	n, err := filesystem.CopyFile(fsys, src, dst)
	out.Bytes += n
	return err
}

// Читает список файлов директории ассета
func readMembers(fsys afero.Fs, dir scan.AssetDir) (m members, err error) {
	infos, err := afero.ReadDir(fsys, dir.Path)
	if err != nil {
		return m, err
	}

	for _, info := range infos {
		path := filepath.Join(dir.Path, info.Name())
		kind := Classify(info.Name())

		if kind == Unrecognized || info.IsDir() {
			console.Log.Warningf("неожиданный файл: %s", path)
			continue
		}
		m[kind] = member{path: path, size: info.Size()}
	}

	return m, nil
}

// Возвращает путь из содержимого pathname: только первая
// строка без завершающих '\r' и '\x00'. Строка из одних
// пробельных символов считается пустой
func ParsePathname(raw []byte) string {
	line, _, _ := bytes.Cut(raw, []byte{'\n'})
	s := strings.TrimRight(string(line), "\r\x00")

	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// Путь превью: суффикс перед расширением, расширение .png
func PreviewPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + PreviewSuffix + PreviewExt
}

// Путь метаданных: суффикс после полного пути
func MetaPath(path string) string {
	return path + MetaSuffix
}
