// Пакет userinput предоставляет функции для
// обработки пользовательского ввода
package userinput

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

const PackageExt = ".unitypackage"

var (
	ErrNoInput = fmt.Errorf("путь к пакету не введен")
	ErrExt     = fmt.Errorf("файл должен иметь расширение '%s'", PackageExt)
)

// Проверяет путь к пакету: расширение и существование файла
func CheckPackage(path string) error {
	if !strings.EqualFold(filepath.Ext(path), PackageExt) {
		return ErrExt
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("'%s' является директорией", path)
	}
	return nil
}

// Запрашивает путь к пакету, пока check не примет
// введенную строку. Кавычки и пробелы по краям
// отбрасываются, так что можно перетащить файл в терминал
func PackagePath(r io.Reader, w io.Writer, check func(string) error) (string, error) {
	stdin := bufio.NewReader(r)

	for {
		fmt.Fprint(w, "Путь к пакету: ")

		line, err := stdin.ReadString('\n')
		path := trimPath(line)

		if path != "" {
			cerr := check(path)
			if cerr == nil {
				return path, nil
			}
			fmt.Fprintln(w, cerr)
		}

		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(w)
				return "", ErrNoInput
			}
			return "", err
		}
	}
}

func trimPath(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// Проверяет является ли стандартный ввод терминалом
func IsNonInteractive() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return true
	}
	return (fi.Mode()&os.ModeCharDevice) == 0 || !term.IsTerminal(int(os.Stdin.Fd()))
}
