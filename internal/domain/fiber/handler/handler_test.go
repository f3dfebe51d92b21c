package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fadilmartias/resume-matcher/internal/apperr"
	"github.com/fadilmartias/resume-matcher/internal/dto"
	"github.com/fadilmartias/resume-matcher/internal/match"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResumes struct {
	maxBytes int64
	files    []dto.ResumeFile
	uploaded string
	enhance  dto.EnhanceRequest
	err      error
}

func (f *fakeResumes) MaxUploadBytes() int64 { return f.maxBytes }

func (f *fakeResumes) Upload(_ context.Context, filename string, data []byte) (*dto.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.uploaded = filename + ":" + string(data)
	return &dto.UploadResult{Name: filename, Blob: "resume/" + filename, Size: len(data)}, nil
}

func (f *fakeResumes) ListResumes(context.Context) ([]dto.ResumeFile, error) {
	return f.files, f.err
}

func (f *fakeResumes) Download(_ context.Context, blob, expires, sig string) ([]byte, error) {
	if sig != "good" {
		return nil, apperr.Errorf(apperr.Forbidden, "test", "signature mismatch")
	}
	return []byte("content of " + blob), nil
}

func (f *fakeResumes) Parse(context.Context) (*dto.ParsedResume, error) {
	return nil, f.err
}

func (f *fakeResumes) Enhance(_ context.Context, req dto.EnhanceRequest) (*dto.EnhanceResult, error) {
	f.enhance = req
	return &dto.EnhanceResult{Message: "Enhanced resume uploaded successfully.", Blob: "enhanced_cv/x.docx"}, nil
}

func (f *fakeResumes) GetEnhancement(_ context.Context, id string) (*dto.EnhancementDTO, error) {
	return nil, apperr.Errorf(apperr.InvalidInput, "test", "invalid enhancement id %q", id)
}

type fakeMatcher struct {
	result *dto.MatchResult
	err    error
}

func (f fakeMatcher) MatchLatestResume(context.Context) (*dto.MatchResult, error) {
	return f.result, f.err
}

type fakeIndexer struct {
	jobs []model.Assignment
}

func (f *fakeIndexer) IndexJobs(_ context.Context, jobs []model.Assignment) (*dto.IndexResult, error) {
	f.jobs = jobs
	return &dto.IndexResult{TotalChunks: len(jobs)}, nil
}

type fakeAssignments struct{}

func (fakeAssignments) GetAssignment(_ context.Context, jobID string) (*model.Assignment, error) {
	switch jobID {
	case "":
		return nil, apperr.Errorf(apperr.InvalidInput, "test", "missing job_id parameter")
	case "J1":
		return &model.Assignment{ID: "J1", Title: "Backend Engineer"}, nil
	default:
		return nil, apperr.Errorf(apperr.NotFound, "test", "no assignment found with id %s", jobID)
	}
}

func newApp(resumes *fakeResumes, matcher fakeMatcher, indexer *fakeIndexer) *fiber.App {
	app := fiber.New()
	Mount(app,
		NewResumeHandler(resumes),
		NewMatchHandler(matcher, indexer),
		NewAssignmentHandler(fakeAssignments{}),
	)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func multipartRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/uploadToBlobStorage", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	resumes := &fakeResumes{maxBytes: 10}
	app := newApp(resumes, fakeMatcher{}, &fakeIndexer{})

	status, body := do(t, app, multipartRequest(t, "file", "cv.txt", "hello"))
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "File cv.txt uploaded successfully.", body["message"])
	assert.Equal(t, "cv.txt:hello", resumes.uploaded)

	status, body = do(t, app, multipartRequest(t, "", "", ""))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "file is required", body["message"])

	status, body = do(t, app, multipartRequest(t, "file", "cv.txt", strings.Repeat("x", 11)))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "file size is too large (max 10 bytes)", body["message"])

	resumes.err = apperr.Errorf(apperr.UnsupportedMedia, "test", "unsupported file type \".exe\"")
	status, body = do(t, app, multipartRequest(t, "file", "cv.exe", "x"))
	assert.Equal(t, fiber.StatusUnsupportedMediaType, status)
	assert.Equal(t, "unsupported file type \".exe\"", body["message"])
	assert.Equal(t, "unsupported_media", body["kind"])
}

func TestListPagination(t *testing.T) {
	resumes := &fakeResumes{files: []dto.ResumeFile{{Name: "a"}, {Name: "b"}, {Name: "c"}}}
	app := newApp(resumes, fakeMatcher{}, &fakeIndexer{})

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/getFilesFromBlobStorage?page=2&page_size=2", nil))
	assert.Equal(t, fiber.StatusOK, status)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "c", data[0].(map[string]any)["name"])
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(3), pagination["total_items"])
	assert.Equal(t, false, pagination["has_more"])
}

func TestDownload(t *testing.T) {
	app := newApp(&fakeResumes{}, fakeMatcher{}, &fakeIndexer{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/files/download?blob=resume%2Fcv.txt&expires=1&sig=good", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "cv.txt")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "content of resume/cv.txt", string(data))

	status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/api/files/download?blob=resume%2Fcv.txt&expires=1&sig=bad", nil))
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestParse_UpstreamMessageHidden(t *testing.T) {
	resumes := &fakeResumes{err: apperr.Errorf(apperr.Upstream, "test", "api key rejected")}
	app := newApp(resumes, fakeMatcher{}, &fakeIndexer{})

	status, body := do(t, app, httptest.NewRequest(http.MethodPost, "/api/parseResume", nil))
	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, "failed to parse resume", body["message"])
	assert.NotContains(t, body, "dev_message")
}

func TestEnhance(t *testing.T) {
	resumes := &fakeResumes{}
	app := newApp(resumes, fakeMatcher{}, &fakeIndexer{})

	req := httptest.NewRequest(http.MethodPost, "/api/enhanceCV", strings.NewReader(`{"job_desc":"Go developer","req_skills":"Go"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	status, body := do(t, app, req)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Enhanced resume uploaded successfully.", body["message"])
	assert.Equal(t, dto.EnhanceRequest{JobDesc: "Go developer", ReqSkills: "Go"}, resumes.enhance)

	req = httptest.NewRequest(http.MethodPost, "/api/enhanceCV", strings.NewReader(`{"req_skills":"Go"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	status, body = do(t, app, req)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, map[string]any{"job_desc": "required"}, body["details"])

	status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/api/enhancements/nope", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestMatch(t *testing.T) {
	matcher := fakeMatcher{result: &dto.MatchResult{
		Query: "go developer",
		MatchedJobs: []match.JobMatch{
			{JobID: "J2", MatchPercent: 100, HighlightedSkills: []string{}},
			{JobID: "J1", MatchPercent: 80, HighlightedSkills: []string{"Python"}},
		},
	}}
	app := newApp(&fakeResumes{}, matcher, &fakeIndexer{})

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/assignmentsMatch", nil))
	assert.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]any)
	jobs := data["matched_jobs"].([]any)
	require.Len(t, jobs, 2)
	first := jobs[0].(map[string]any)
	assert.Equal(t, "J2", first["jobId"])
	assert.Equal(t, float64(100), first["matchPercent"])
	assert.NotContains(t, first, "Score")
}

func TestMatch_NoResume(t *testing.T) {
	matcher := fakeMatcher{err: apperr.Errorf(apperr.NotFound, "test", "no files found under resume")}
	app := newApp(&fakeResumes{}, matcher, &fakeIndexer{})

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/assignmentsMatch", nil))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "no files found under resume", body["message"])
}

func TestIndexJobs(t *testing.T) {
	indexer := &fakeIndexer{}
	app := newApp(&fakeResumes{}, fakeMatcher{}, indexer)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/index", strings.NewReader(`{"jobs":[{"id":"J1","title":"Backend","job_desc":"Build"}]}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	status, _ := do(t, app, req)
	assert.Equal(t, fiber.StatusOK, status)
	require.Len(t, indexer.jobs, 1)
	assert.Equal(t, "J1", indexer.jobs[0].ID)
	assert.Equal(t, "Build", indexer.jobs[0].JobDesc)
}

func TestGetAssignmentDetails(t *testing.T) {
	app := newApp(&fakeResumes{}, fakeMatcher{}, &fakeIndexer{})

	tests := []struct {
		query   string
		status  int
		message string
	}{
		{"", fiber.StatusBadRequest, "missing job_id parameter"},
		{"?job_id=J404", fiber.StatusNotFound, "no assignment found with id J404"},
		{"?job_id=J1", fiber.StatusOK, "Success get assignment"},
	}
	for _, tt := range tests {
		status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/api/getAssignmentDetails"+tt.query, nil))
		assert.Equal(t, tt.status, status, tt.query)
		assert.Equal(t, tt.message, body["message"], tt.query)
	}
}
