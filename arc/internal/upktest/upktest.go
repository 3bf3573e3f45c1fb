// Пакет upktest собирает архивы unitypackage для тестов
package upktest

import (
	"archive/tar"
	"bytes"
	"sort"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// Описание ассета в тестовом архиве. Пустые
// поля не попадают в архив, кроме Asset с WriteEmpty
type Asset struct {
	ID       string
	Pathname string
	Asset    []byte
	Meta     []byte
	Preview  []byte
	// Записать пустой файл asset
	WriteEmpty bool
	// Дополнительные файлы директории ассета
	Extra map[string][]byte
}

// Возвращает несжатый tar с ассетами
func Tar(t testing.TB, assets ...Asset) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	for _, a := range assets {
		writeDir(t, tw, a.ID+"/")
		if a.Asset != nil || a.WriteEmpty {
			writeFile(t, tw, a.ID+"/asset", a.Asset)
		}
		if a.Pathname != "" {
			writeFile(t, tw, a.ID+"/pathname", []byte(a.Pathname))
		}
		if a.Meta != nil {
			writeFile(t, tw, a.ID+"/asset.meta", a.Meta)
		}
		if a.Preview != nil {
			writeFile(t, tw, a.ID+"/preview.png", a.Preview)
		}

		names := make([]string, 0, len(a.Extra))
		for name := range a.Extra {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			writeFile(t, tw, a.ID+"/"+name, a.Extra[name])
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// Возвращает tar.gz с ассетами
func Package(t testing.TB, assets ...Asset) []byte {
	t.Helper()
	return Gzip(t, Tar(t, assets...))
}

func Gzip(t testing.TB, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func writeDir(t testing.TB, tw *tar.Writer, name string) {
	t.Helper()
	err := tw.WriteHeader(&tar.Header{Typeflag: tar.TypeDir, Name: name, Mode: 0755})
	if err != nil {
		t.Fatal(err)
	}
}

func writeFile(t testing.TB, tw *tar.Writer, name string, data []byte) {
	t.Helper()
	err := tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Mode:     0644,
		Size:     int64(len(data)),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err = tw.Write(data); err != nil {
		t.Fatal(err)
	}
}
