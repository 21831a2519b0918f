package world

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/mdflow/model/ident"
)

// Extension of artifact source files.
const Extension = ".md"

// FS maps artifact a:b:c to <baseURL>/a/b/c.md on any afs backend.
type FS struct {
	id       ident.WorldID
	baseURL  string
	readOnly bool
	fs       afs.Service
	options  []storage.Option
}

// NewFS creates an afs backed world
func NewFS(id ident.WorldID, baseURL string, options ...Option) *FS {
	ret := &FS{id: id, baseURL: strings.TrimRight(baseURL, "/")}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

func (w *FS) ID() ident.WorldID {
	return w.id
}

func (w *FS) ReadOnly() bool {
	return w.readOnly
}

// URL returns the location of an artifact source.
func (w *FS) URL(id ident.ArtifactID) string {
	return url.Join(w.baseURL, path.Join(id.Segments()...)+Extension)
}

func (w *FS) Has(ctx context.Context, id ident.ArtifactID) (bool, error) {
	URL := w.URL(id)
	ok, err := w.fs.Exists(ctx, URL, w.options...)
	if err != nil {
		return false, fmt.Errorf("failed to check %v: %w", URL, err)
	}
	return ok, nil
}

func (w *FS) Fetch(ctx context.Context, id ident.ArtifactID) ([]byte, error) {
	ok, err := w.Has(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrArtifactNotFound, w.id.Artifact(id))
	}
	URL := w.URL(id)
	data, err := w.fs.DownloadWithURL(ctx, URL, w.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %v: %w", URL, err)
	}
	return data, nil
}

func (w *FS) Update(ctx context.Context, id ident.ArtifactID, source []byte) error {
	if w.readOnly {
		return fmt.Errorf("%w: %v", ErrReadOnlyWorld, w.id)
	}
	URL := w.URL(id)
	if err := w.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(source), w.options...); err != nil {
		return fmt.Errorf("failed to update %v: %w", URL, err)
	}
	return nil
}

func (w *FS) Remove(ctx context.Context, id ident.ArtifactID) error {
	if w.readOnly {
		return fmt.Errorf("%w: %v", ErrReadOnlyWorld, w.id)
	}
	ok, err := w.Has(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %v", ErrArtifactNotFound, w.id.Artifact(id))
	}
	URL := w.URL(id)
	if err := w.fs.Delete(ctx, URL, w.options...); err != nil {
		return fmt.Errorf("failed to remove %v: %w", URL, err)
	}
	return nil
}

func (w *FS) List(ctx context.Context, pattern ident.FullArtifactIDPattern) ([]ident.FullArtifactID, error) {
	root := []string{string(w.id)}
	if !pattern.CanMatchPrefix(root) {
		return nil, nil
	}
	ok, err := w.fs.Exists(ctx, w.baseURL, w.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to check %v: %w", w.baseURL, err)
	}
	if !ok {
		return nil, nil
	}
	var ret []ident.FullArtifactID
	if err := w.walk(ctx, w.baseURL, root, pattern, &ret); err != nil {
		return nil, err
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret, nil
}

// walk descends only into directories whose segment prefix can still match.
func (w *FS) walk(ctx context.Context, dirURL string, prefix []string, pattern ident.FullArtifactIDPattern, result *[]ident.FullArtifactID) error {
	objects, err := w.fs.List(ctx, dirURL, w.options...)
	if err != nil {
		return fmt.Errorf("failed to list %v: %w", dirURL, err)
	}
	dirPath := strings.TrimRight(url.Path(dirURL), "/")
	for _, object := range objects {
		if strings.TrimRight(url.Path(object.URL()), "/") == dirPath {
			continue
		}
		name := object.Name()
		if object.IsDir() {
			if !ident.IsIdentifier(name) {
				continue
			}
			segments := append(append([]string{}, prefix...), name)
			if !pattern.CanMatchPrefix(segments) {
				continue
			}
			if err := w.walk(ctx, object.URL(), segments, pattern, result); err != nil {
				return err
			}
			continue
		}
		if !strings.HasSuffix(name, Extension) {
			continue
		}
		name = strings.TrimSuffix(name, Extension)
		if !ident.IsIdentifier(name) {
			continue
		}
		segments := append(append([]string{}, prefix...), name)
		if pattern.MatchSegments(segments) {
			*result = append(*result, ident.FullArtifactID(strings.Join(segments, string(ident.Delimiter))))
		}
	}
	return nil
}
