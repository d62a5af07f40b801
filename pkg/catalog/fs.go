package catalog

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// NewFs roots an afero filesystem at dir, which must exist.
func NewFs(dir string) (afero.Fs, error) {
	fs := afero.NewOsFs()
	if exists, err := afero.DirExists(fs, dir); err != nil {
		return nil, err
	} else if !exists {
		return nil, errors.Errorf("dir %s not exists", dir)
	}
	return afero.NewBasePathFs(fs, dir), nil
}
