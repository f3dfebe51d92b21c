package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/fadilmartias/resume-matcher/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storeSeq int

func newTestStore(t *testing.T) *BlobStore {
	t.Helper()
	storeSeq++
	return NewBlobStore(fmt.Sprintf("mem://localhost/blobtest%d/gtfydemo", storeSeq))
}

func TestBlobStore_UploadDownload(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Upload(ctx, "resume/cv.txt", []byte("hello")))

	data, err := store.Download(ctx, "resume/cv.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestBlobStore_DownloadMissing(t *testing.T) {
	_, err := newTestStore(t).Download(context.Background(), "resume/none.pdf")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestBlobStore_ListAndDeletePrefix(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	blobs, err := store.List(ctx, "resume")
	require.NoError(t, err)
	assert.Empty(t, blobs)

	require.NoError(t, store.Upload(ctx, "resume/a.txt", []byte("a")))
	require.NoError(t, store.Upload(ctx, "resume/b.txt", []byte("bb")))
	require.NoError(t, store.Upload(ctx, "enhanced_cv/c.docx", []byte("ccc")))

	blobs, err = store.List(ctx, "resume")
	require.NoError(t, err)
	require.Len(t, blobs, 2)
	names := []string{blobs[0].Name, blobs[1].Name}
	assert.ElementsMatch(t, []string{"resume/a.txt", "resume/b.txt"}, names)

	n, err := store.DeletePrefix(ctx, "resume")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	blobs, err = store.List(ctx, "resume")
	require.NoError(t, err)
	assert.Empty(t, blobs)

	others, err := store.List(ctx, "enhanced_cv")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestBlobStore_LatestEmpty(t *testing.T) {
	_, err := newTestStore(t).Latest(context.Background(), "resume")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestBlobStore_RejectsTraversal(t *testing.T) {
	err := newTestStore(t).Upload(context.Background(), "../etc/passwd", []byte("x"))
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
}
