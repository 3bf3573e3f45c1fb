// Пакет arc управляет распаковкой пакета unitypackage:
// временной директорией, распаковкой контейнера и
// параллельной сборкой ассетов
package arc

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gh0st17/upkextract/arc/internal/assemble"
	"github.com/gh0st17/upkextract/arc/internal/dispatch"
	"github.com/gh0st17/upkextract/arc/internal/result"
	"github.com/gh0st17/upkextract/arc/internal/scan"
	"github.com/gh0st17/upkextract/arc/internal/unpack"
	"github.com/gh0st17/upkextract/compressor"
	"github.com/gh0st17/upkextract/console"
	"github.com/gh0st17/upkextract/errtype"
	"github.com/gh0st17/upkextract/filesystem"
	"github.com/spf13/afero"
)

const stagingPrefix = "upkextract-"

// Параметры распаковки, не меняются после NewArc
type Options struct {
	OutputDir   string // Абсолютный путь корня вывода
	StagingDir  string // Временная директория, пусто - создать уникальную
	EmitMeta    bool
	EmitPreview bool
	Workers     int // Число работников, 0 - по числу ядер
	KeepStaging bool
}

// Структура распаковщика
type Arc struct {
	opts Options
	fs   afero.Fs
	out  *console.Printer
}

// Возвращает новый [Arc]. Вывод идет в out, файловые
// операции выполняются в fsys
func NewArc(opts Options, fsys afero.Fs, out *console.Printer) (*Arc, error) {
	if !filepath.IsAbs(opts.OutputDir) {
		return nil, errtype.ErrRuntime(ErrNotAbs(opts.OutputDir).Error(), nil)
	}
	if opts.StagingDir != "" {
		if !filepath.IsAbs(opts.StagingDir) {
			return nil, errtype.ErrRuntime(ErrNotAbs(opts.StagingDir).Error(), nil)
		}
		// Временная директория удаляется целиком
		// после распаковки, чужие файлы в ней недопустимы
		if filesystem.DirExists(fsys, opts.StagingDir) {
			if empty, err := afero.IsEmpty(fsys, opts.StagingDir); err != nil || !empty {
				return nil, errtype.ErrRuntime(ErrStagingNotEmpty(opts.StagingDir).Error(), err)
			}
		}
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}

	return &Arc{opts: opts, fs: fsys, out: out}, nil
}

func (arc *Arc) Options() Options { return arc.opts }

// Распаковывает пакет из r в директорию вывода.
//
// Ошибки декодирования, распаковки контейнера и пустой
// архив прерывают работу до запуска работников. Ошибки
// отдельных ассетов попадают в [Report]. Временная
// директория удаляется при любом исходе
func (arc *Arc) Extract(r io.Reader) (rep Report, err error) {
	stage, err := arc.createStaging()
	if err != nil {
		return rep, err
	}
	defer arc.removeTmp(stage)

	dirs, err := arc.unpack(r, stage)
	if err != nil {
		return rep, err
	}
	rep.Assets = len(dirs)

	if err = filesystem.CreatePath(arc.fs, arc.opts.OutputDir); err != nil {
		return rep, errtype.ErrRuntime(ErrOutputDir.Error(), err)
	}
	arc.out.Printf("Распаковка %d ассетов в: %s\n", len(dirs), arc.opts.OutputDir)

	aopts := assemble.Options{
		OutputDir:   arc.opts.OutputDir,
		EmitMeta:    arc.opts.EmitMeta,
		EmitPreview: arc.opts.EmitPreview,
	}

	results := dispatch.Run(
		dispatch.NewWorkQueue(dirs),
		arc.opts.Workers,
		func(dir scan.AssetDir) (string, int64, error) {
			o, err := assemble.Assemble(arc.fs, dir, aopts)
			return o.Path, o.Bytes, err
		},
		result.NewAggregator(arc.out, len(dirs)),
	)

	rep.collect(results)
	return rep, nil
}

// Декодирует поток, распаковывает контейнер в stage
// и возвращает найденные директории ассетов
func (arc *Arc) unpack(r io.Reader, stage string) ([]scan.AssetDir, error) {
	d, err := compressor.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	console.Log.Debugf("тип сжатия: %s", d.Type())

	st, err := unpack.Unpack(d, arc.fs, stage)
	if err != nil {
		return nil, err
	}
	if err = d.Drain(); err != nil {
		return nil, err
	}
	console.Log.Debugf("директорий: %d, файлов: %d, байт: %d", st.Dirs, st.Files, st.Bytes)

	return scan.AssetDirs(arc.fs, stage)
}

// Создает временную директорию. Заданная в параметрах
// директория создается, если ее нет
func (arc *Arc) createStaging() (string, error) {
	if arc.opts.StagingDir == "" {
		stage, err := afero.TempDir(arc.fs, "", stagingPrefix)
		if err != nil {
			return "", errtype.ErrRuntime(ErrStaging.Error(), err)
		}
		return stage, nil
	}

	if err := filesystem.CreatePath(arc.fs, arc.opts.StagingDir); err != nil {
		return "", errtype.ErrRuntime(ErrStaging.Error(), err)
	}
	return arc.opts.StagingDir, nil
}

// Удаляет временную директорию
func (arc *Arc) removeTmp(stage string) {
	if arc.opts.KeepStaging {
		arc.out.Println("Временная директория сохранена:", stage)
		return
	}

	if err := arc.fs.RemoveAll(stage); err != nil && !os.IsNotExist(err) {
		console.Log.Errorf("%v: %v", ErrRemoveStage, err)
	}
}
