package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/apperr"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// BlobInfo describes one stored blob. Name is relative to the store base URL.
type BlobInfo struct {
	Name         string
	Size         int64
	LastModified time.Time
}

// BlobStore keeps resumes and generated documents under one afs location
// (file://, mem://, gs://, s3:// ...).
type BlobStore struct {
	fs      afs.Service
	baseURL string
}

func NewBlobStore(baseURL string) *BlobStore {
	return &BlobStore{fs: afs.New(), baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *BlobStore) url(name string) string {
	return url.Join(s.baseURL, strings.TrimLeft(name, "/"))
}

// Upload stores data under name, replacing any previous content.
func (s *BlobStore) Upload(ctx context.Context, name string, data []byte) error {
	const op = "storage.Upload"
	if err := validName(name); err != nil {
		return apperr.New(apperr.InvalidInput, op, err)
	}
	if err := s.fs.Upload(ctx, s.url(name), file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return apperr.New(apperr.Upstream, op, fmt.Errorf("upload %s: %w", name, err))
	}
	return nil
}

// List returns the blobs directly under prefix, newest first.
func (s *BlobStore) List(ctx context.Context, prefix string) ([]BlobInfo, error) {
	const op = "storage.List"
	folder := s.url(prefix)
	exists, err := s.fs.Exists(ctx, folder)
	if err != nil {
		return nil, apperr.New(apperr.Upstream, op, err)
	}
	if !exists {
		return []BlobInfo{}, nil
	}

	objects, err := s.fs.List(ctx, folder)
	if err != nil {
		return nil, apperr.New(apperr.Upstream, op, fmt.Errorf("list %s: %w", prefix, err))
	}

	blobs := make([]BlobInfo, 0, len(objects))
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		blobs = append(blobs, BlobInfo{
			Name:         path.Join(strings.Trim(prefix, "/"), object.Name()),
			Size:         object.Size(),
			LastModified: object.ModTime(),
		})
	}
	sort.SliceStable(blobs, func(i, j int) bool {
		return blobs[i].LastModified.After(blobs[j].LastModified)
	})
	return blobs, nil
}

// Latest returns the most recently modified blob under prefix.
func (s *BlobStore) Latest(ctx context.Context, prefix string) (*BlobInfo, error) {
	blobs, err := s.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if len(blobs) == 0 {
		return nil, apperr.Errorf(apperr.NotFound, "storage.Latest", "no files found under %s", prefix)
	}
	return &blobs[0], nil
}

func (s *BlobStore) Download(ctx context.Context, name string) ([]byte, error) {
	const op = "storage.Download"
	if err := validName(name); err != nil {
		return nil, apperr.New(apperr.InvalidInput, op, err)
	}
	exists, err := s.fs.Exists(ctx, s.url(name))
	if err != nil {
		return nil, apperr.New(apperr.Upstream, op, err)
	}
	if !exists {
		return nil, apperr.Errorf(apperr.NotFound, op, "blob %s not found", name)
	}
	data, err := s.fs.DownloadWithURL(ctx, s.url(name))
	if err != nil {
		return nil, apperr.New(apperr.Upstream, op, fmt.Errorf("download %s: %w", name, err))
	}
	return data, nil
}

func (s *BlobStore) Delete(ctx context.Context, name string) error {
	const op = "storage.Delete"
	if err := validName(name); err != nil {
		return apperr.New(apperr.InvalidInput, op, err)
	}
	if err := s.fs.Delete(ctx, s.url(name)); err != nil {
		return apperr.New(apperr.Upstream, op, fmt.Errorf("delete %s: %w", name, err))
	}
	return nil
}

// DeletePrefix removes every blob under prefix and returns how many were deleted.
func (s *BlobStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	blobs, err := s.List(ctx, prefix)
	if err != nil {
		return 0, err
	}
	for i, blob := range blobs {
		if err := s.Delete(ctx, blob.Name); err != nil {
			return i, err
		}
	}
	return len(blobs), nil
}

func validName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("blob name is empty")
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return fmt.Errorf("blob name %q escapes the container", name)
		}
	}
	return nil
}
