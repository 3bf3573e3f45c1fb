// Пакет unpack последовательно читает поток tar и
// переносит его записи во временную директорию
package unpack

import (
	"archive/tar"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gh0st17/upkextract/console"
	"github.com/gh0st17/upkextract/errtype"
	"github.com/gh0st17/upkextract/filesystem"
	"github.com/spf13/afero"
)

// Запись архива
type Entry struct {
	Name string // Относительный путь с прямыми слешами
	Dir  bool
	Size int64
}

// Статистика распаковки
type Stats struct {
	Dirs  int
	Files int
	Bytes int64
}

// Прототип функции-обработчика записей. body
// действителен только до возврата из функции
type WalkFunc = func(e Entry, body io.Reader) error

// Читает записи tar из r по порядку и передает их в fn.
// Записи кроме файлов и директорий пропускаются
func Walk(r io.Reader, fn WalkFunc) error {
	tr := tar.NewReader(r)

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return errtype.ErrUnpack(ErrReadEntry.Error(), err)
		}

		name, ok := entryName(hdr.Name)
		if !ok {
			return errtype.ErrUnpack(ErrUnsafePath(hdr.Name).Error(), nil)
		}
		if name == "" {
			continue
		}

		var e Entry
		switch mode := hdr.FileInfo().Mode(); {
		case mode.IsDir():
			e = Entry{Name: name, Dir: true}
		case mode.IsRegular():
			e = Entry{Name: name, Size: hdr.Size}
		default:
			console.Log.Debugf("пропускаю запись '%s' типа '%c'", hdr.Name, hdr.Typeflag)
			continue
		}

		if err = fn(e, tr); err != nil {
			return err
		}
	}
}

// Распаковывает поток tar из r в директорию root
func Unpack(r io.Reader, fsys afero.Fs, root string) (st Stats, err error) {
	err = Walk(r, func(e Entry, body io.Reader) error {
		outPath := filepath.Join(root, filepath.FromSlash(e.Name))

		if e.Dir {
			if err := filesystem.CreatePath(fsys, outPath); err != nil {
				return errtype.ErrUnpack(ErrCreateDir(e.Name).Error(), err)
			}
			st.Dirs++
			return nil
		}

		n, err := writeEntry(fsys, outPath, body)
		if err != nil {
			return err
		}
		console.Log.Debugf("%s (%d)", e.Name, n)

		st.Files++
		st.Bytes += n
		return nil
	})

	return st, err
}

// Записывает тело записи в файл outPath
func writeEntry(fsys afero.Fs, outPath string, body io.Reader) (int64, error) {
	if err := filesystem.CreatePath(fsys, filepath.Dir(outPath)); err != nil {
		return 0, errtype.ErrUnpack(ErrCreateDir(filepath.Dir(outPath)).Error(), err)
	}

	f, err := fsys.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return 0, errtype.ErrUnpack(ErrCreateEntry.Error(), err)
	}

	n, err := io.Copy(f, body)
	if err != nil {
		f.Close()
		return n, errtype.ErrUnpack(ErrWriteEntry.Error(), err)
	}

	if err = f.Close(); err != nil {
		return n, errtype.ErrUnpack(ErrWriteEntry.Error(), err)
	}
	return n, nil
}

// Нормализует имя записи. Возвращает false, если
// путь абсолютный или выходит за корень архива
func entryName(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	if path.IsAbs(name) || filepath.IsAbs(name) {
		return "", false
	}

	name = path.Clean(name)
	switch {
	case name == ".":
		return "", true
	case name == ".." || strings.HasPrefix(name, "../"):
		return "", false
	}
	return name, true
}
