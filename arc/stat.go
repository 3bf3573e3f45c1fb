package arc

import (
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gh0st17/upkextract/arc/internal/assemble"
	"github.com/gh0st17/upkextract/arc/internal/unpack"
	"github.com/gh0st17/upkextract/compressor"
	"github.com/gh0st17/upkextract/errtype"
	"github.com/gh0st17/upkextract/filesystem"
)

// Ограничение на чтение pathname при просмотре
const maxPathnameLen = 64 * 1024

// Сведения об ассете, собранные без распаковки на диск
type assetInfo struct {
	id      string
	path    string
	size    int64 // Размер основного файла
	payload bool
}

type kindStat struct {
	count int
	bytes int64
}

// Обходит записи пакета, передавая в fn идентификатор
// ассета и имя файла внутри его директории
func walkPackage(r io.Reader, fn func(id, name string, e unpack.Entry, body io.Reader) error) (compressor.Type, error) {
	d, err := compressor.NewReader(r)
	if err != nil {
		return compressor.Unknown, err
	}
	defer d.Close()

	err = unpack.Walk(d, func(e unpack.Entry, body io.Reader) error {
		id, name, _ := strings.Cut(e.Name, "/")
		return fn(id, name, e, body)
	})
	if err == nil {
		err = d.Drain()
	}

	return d.Type(), err
}

// Печатает список ассетов пакета: размер и итоговый путь
func (arc *Arc) ViewList(r io.Reader) error {
	assets := map[string]*assetInfo{}
	get := func(id string) *assetInfo {
		a, ok := assets[id]
		if !ok {
			a = &assetInfo{id: id}
			assets[id] = a
		}
		return a
	}

	_, err := walkPackage(r, func(id, name string, e unpack.Entry, body io.Reader) error {
		if e.Dir {
			if name == "" {
				get(id)
			}
			return nil
		}

		switch assemble.Classify(name) {
		case assemble.Payload:
			a := get(id)
			a.size, a.payload = e.Size, true
		case assemble.Pathname:
			raw, err := io.ReadAll(io.LimitReader(body, maxPathnameLen))
			if err != nil {
				return errtype.ErrUnpack(ErrReadPathname.Error(), err)
			}
			get(id).path = filesystem.Clean(assemble.ParsePathname(raw))
		}
		return nil
	})
	if err != nil {
		return err
	}

	list := make([]*assetInfo, 0, len(assets))
	for _, a := range assets {
		list = append(list, a)
	}
	slices.SortFunc(list, func(a, b *assetInfo) int {
		if c := strings.Compare(a.path, b.path); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})

	for _, a := range list {
		switch {
		case a.path == "":
			arc.out.Printf("%10s  %s: путь отсутствует\n", "-", a.id)
		case !a.payload || a.size == 0:
			arc.out.Printf("%10s  %s/\n", "-", a.path)
		default:
			arc.out.Printf("%10s  %s\n", humanize.Bytes(uint64(a.size)), a.path)
		}
	}

	return nil
}

// Печатает статистику пакета по видам файлов
func (arc *Arc) ViewStat(r io.Reader) error {
	var (
		ids   = map[string]struct{}{}
		stats [assemble.Preview + 1]kindStat
	)

	ct, err := walkPackage(r, func(id, name string, e unpack.Entry, _ io.Reader) error {
		if e.Dir || name != "" {
			ids[id] = struct{}{}
		}
		if e.Dir {
			return nil
		}

		kind := assemble.Unrecognized
		if name != "" && !strings.Contains(name, "/") {
			kind = assemble.Classify(name)
		}
		stats[kind].count++
		stats[kind].bytes += e.Size
		return nil
	})
	if err != nil {
		return err
	}

	arc.out.Printf("Тип сжатия: %s\n", ct)
	arc.out.Printf("Ассетов:    %d\n\n", len(ids))
	arc.out.Printf("%-14s %8s %11s\n", "Вид", "Файлов", "Размер")

	var total kindStat
	for _, kind := range []assemble.Kind{
		assemble.Payload, assemble.Pathname, assemble.Metadata,
		assemble.Preview, assemble.Unrecognized,
	} {
		s := stats[kind]
		arc.out.Printf("%-14s %8d %11s\n", kind, s.count, humanize.Bytes(uint64(s.bytes)))
		total.count += s.count
		total.bytes += s.bytes
	}
	arc.out.Printf("%-14s %8d %11s\n", "Итого", total.count, humanize.Bytes(uint64(total.bytes)))

	return nil
}
