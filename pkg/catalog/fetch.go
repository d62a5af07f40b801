package catalog

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"path"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// NewFetcher downloads catalogs over http. A non nil fs keeps a copy of
// every fetched catalog, used when the server cannot be reached.
func NewFetcher(fs afero.Fs, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		cli: resty.New().SetDoNotParseResponse(true),
		fs:  fs,
		log: logger,
	}
}

type Fetcher struct {
	cli *resty.Client
	fs  afero.Fs
	log *zap.Logger
}

func (f *Fetcher) filename(link string) string {
	u, err := url.Parse(link)
	if err != nil || path.Base(u.Path) == "/" || path.Base(u.Path) == "." {
		return "catalog.yaml"
	}
	return path.Base(u.Path)
}

func (f *Fetcher) Fetch(link string) (*Catalog, error) {
	bs, err := f.download(link)
	if err != nil {
		if f.fs == nil {
			return nil, err
		}
		f.log.With(zap.Error(err), zap.String("url", link)).Info("fetch failed, using cached copy")
		return Load(f.fs, f.filename(link))
	}

	c, err := Parse(bs)
	if err != nil {
		return nil, err
	}

	if f.fs != nil {
		if err := afero.WriteFile(f.fs, f.filename(link), bs, 0644); err != nil {
			return nil, errors.Wrap(err, "cache catalog")
		}
		f.log.With(zap.String("file", f.filename(link))).Debug("catalog cached")
	}

	return c, nil
}

func (f *Fetcher) download(link string) ([]byte, error) {
	resp, err := f.cli.R().Get(link)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	if resp.StatusCode() >= 300 {
		return nil, errors.Errorf("fetch %s: %s", link, resp.Status())
	}

	bar := progressbar.DefaultBytes(resp.RawResponse.ContentLength, fmt.Sprintf("Fetching %s", link))

	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, bar), resp.RawBody()); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
