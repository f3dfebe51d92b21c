package usecase

import (
	"context"
	"net/url"
	"testing"

	"github.com/fadilmartias/resume-matcher/internal/apperr"
	"github.com/fadilmartias/resume-matcher/internal/dto"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload_ReplacesPreviousResumes(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.upload(t, "old.txt", "old resume")
	res, err := f.uc.Upload(ctx, "../../new.txt", []byte("new resume"))
	require.NoError(t, err)
	assert.Equal(t, "new.txt", res.Name)
	assert.Equal(t, "resume/new.txt", res.Blob)
	assert.Equal(t, 1, res.Replaced)

	files, err := f.uc.ListResumes(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "new.txt", files[0].Name)
	assert.Equal(t, int64(len("new resume")), files[0].Size)
	assert.Len(t, files[0].LastModified, len("2006-01-02 15:04:05"))
	assert.Contains(t, files[0].DownloadURL, "/api/files/download?")
}

func TestUpload_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.uc.Upload(ctx, "cv.exe", []byte("x"))
	assert.Equal(t, apperr.UnsupportedMedia, apperr.KindOf(err))

	_, err = f.uc.Upload(ctx, "cv.txt", nil)
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	_, err = f.uc.Upload(ctx, "cv.txt", []byte(repeat("x", 65)))
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	_, err = f.uc.Upload(ctx, " ", []byte("x"))
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
}

func TestDownload_SignedLink(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.upload(t, "cv.txt", "resume body")

	files, err := f.uc.ListResumes(ctx)
	require.NoError(t, err)
	u, err := url.Parse(files[0].DownloadURL)
	require.NoError(t, err)
	q := u.Query()

	data, err := f.uc.Download(ctx, q.Get("blob"), q.Get("expires"), q.Get("sig"))
	require.NoError(t, err)
	assert.Equal(t, "resume body", string(data))

	_, err = f.uc.Download(ctx, "resume/other.txt", q.Get("expires"), q.Get("sig"))
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestLatestResumeText_NoResume(t *testing.T) {
	f := newFixture(t, nil)
	_, _, err := f.uc.LatestResumeText(context.Background())
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestParse_UsesCache(t *testing.T) {
	cache := &countingCache{}
	f := newFixture(t, cache)
	f.upload(t, "cv.txt", "Jane Doe, Go developer")
	f.completer.reply = "```json\n{\"name\":\"Jane Doe\",\"skills\":[\"Go\"]}\n```"

	first, err := f.uc.Parse(context.Background())
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "Jane Doe", first.Resume.Name)
	assert.Equal(t, "resume/cv.txt", first.Blob)
	assert.Contains(t, f.completer.prompts[0], "Jane Doe, Go developer")

	second, err := f.uc.Parse(context.Background())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Len(t, f.completer.prompts, 1)
	assert.Equal(t, 1, cache.sets)
}

func TestParse_StrictFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.upload(t, "cv.txt", "Jane")
	f.completer.reply = "I cannot do that"

	_, err := f.uc.Parse(context.Background())
	assert.Equal(t, apperr.Upstream, apperr.KindOf(err))
}

func TestEnhance(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.upload(t, "cv.txt", "Jane Doe\nGo developer")
	f.completer.reply = "**Jane Doe**\n### Skills\n- Go\n- Kubernetes"

	res, err := f.uc.Enhance(ctx, dto.EnhanceRequest{JobDesc: "Platform engineer", ReqSkills: "Go, Kubernetes"})
	require.NoError(t, err)
	assert.Equal(t, "enhanced_cv/enhanced_resume_20250304050607.docx", res.Blob)
	assert.Equal(t, "Enhanced resume uploaded successfully.", res.Message)
	assert.Contains(t, res.DownloadURL, "blob=enhanced_cv%2Fenhanced_resume_20250304050607.docx")
	assert.Contains(t, f.completer.prompts[0], "Platform engineer")
	assert.Contains(t, f.completer.prompts[0], "Go, Kubernetes")

	data, err := f.blobs.Download(ctx, res.Blob)
	require.NoError(t, err)
	text, err := util.ExtractDOCX(data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills\nGo\nKubernetes", text)

	got, err := f.uc.GetEnhancement(ctx, res.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.EnhancementStatusCompleted, got.Status)
	assert.Equal(t, "resume/cv.txt", got.SourceBlob)
	assert.NotEmpty(t, got.DownloadURL)

	// the upload of a new resume does not touch enhanced documents
	f.upload(t, "cv2.txt", "another")
	_, err = f.blobs.Download(ctx, res.Blob)
	assert.NoError(t, err)
}

func TestEnhance_Errors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.uc.Enhance(ctx, dto.EnhanceRequest{JobDesc: "  "})
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	_, err = f.uc.Enhance(ctx, dto.EnhanceRequest{JobDesc: "x"})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	f.upload(t, "cv.txt", "Jane")
	f.completer.err = errBoom
	_, err = f.uc.Enhance(ctx, dto.EnhanceRequest{JobDesc: "x"})
	assert.Equal(t, apperr.Upstream, apperr.KindOf(err))
	require.Len(t, f.enhancements.items, 1)
	for _, e := range f.enhancements.items {
		assert.Equal(t, model.EnhancementStatusFailed, e.Status)
		assert.Equal(t, "boom", e.Error)
	}
}

func TestGetEnhancement_Errors(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.uc.GetEnhancement(context.Background(), "nope")
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	_, err = f.uc.GetEnhancement(context.Background(), "6f1b7c0e-3f7e-4d0b-9d55-0a8f7c2a1e11")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
