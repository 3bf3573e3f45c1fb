package filesystem

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Разбивает путь на компоненты
func SplitPath(path string) []string {
	path = filepath.Clean(path)

	dir, last := filepath.Split(path)
	if last == "" { // Корень или том
		return []string{path}
	}
	if dir == "" {
		return []string{last}
	}
	return append(SplitPath(dir), last)
}

// Создает директории на всем пути `path`.
//
// Директория, созданная другим писателем между
// проверкой и созданием, не считается ошибкой
func CreatePath(fsys afero.Fs, path string) error {
	var (
		splitedPath = SplitPath(path)
		fullPath    string
	)

	for _, pathPart := range splitedPath {
		fullPath = filepath.Join(fullPath, pathPart)

		if DirExists(fsys, fullPath) {
			continue
		}

		if err := fsys.Mkdir(fullPath, 0755); err != nil {
			if errors.Is(err, os.ErrExist) && DirExists(fsys, fullPath) {
				continue
			}
			return err
		}
	}

	return nil
}

// Проверяет существование директории
func DirExists(fsys afero.Fs, dirPath string) bool {
	if info, err := fsys.Stat(dirPath); err != nil {
		return false
	} else {
		return info.IsDir()
	}
}

// Номализует путь из архива: обратные слеши
// заменяются прямыми, начальный '/' и выход
// за корень через '..' отбрасываются
func Clean(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.TrimPrefix(path, "/")
	parts := strings.Split(path, "/")
	stack := []string{}

	for _, part := range parts {
		switch part {
		case ".", "":
			// Игнорируем текущую директорию или пустые части
			continue
		case "..":
			// Удаляем предыдущий элемент, если он есть
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, part)
		}
	}

	return strings.Join(stack, "/")
}

// Копирует файл src в dst, перезаписывая dst.
// Возвращает количество записанных байт
func CopyFile(fsys afero.Fs, src, dst string) (int64, error) {
	in, err := fsys.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, err
	}

	return n, out.Close()
}
