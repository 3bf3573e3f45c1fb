// Пакет scan находит директории ассетов во временной директории
package scan

import (
	"path/filepath"

	"github.com/gh0st17/upkextract/arc/internal/errors"
	"github.com/gh0st17/upkextract/errtype"
	"github.com/spf13/afero"
)

// Директория одного ассета во временной директории
type AssetDir struct {
	Name string // Идентификатор ассета в архиве
	Path string
}

// Возвращает непосредственные поддиректории root
// в лексикографическом порядке
func AssetDirs(fsys afero.Fs, root string) ([]AssetDir, error) {
	infos, err := afero.ReadDir(fsys, root)
	if err != nil {
		return nil, errtype.ErrUnpack(errors.ErrReadStaging.Error(), err)
	}

	dirs := make([]AssetDir, 0, len(infos))
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		dirs = append(dirs, AssetDir{
			Name: info.Name(),
			Path: filepath.Join(root, info.Name()),
		})
	}

	if len(dirs) == 0 {
		return nil, errtype.ErrEmpty(errors.ErrNoAssets.Error())
	}
	return dirs, nil
}
