package usecase

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/apperr"
	"github.com/fadilmartias/resume-matcher/internal/docx"
	"github.com/fadilmartias/resume-matcher/internal/dto"
	"github.com/fadilmartias/resume-matcher/internal/logger"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/resume"
	"github.com/fadilmartias/resume-matcher/internal/service"
	"github.com/fadilmartias/resume-matcher/internal/storage"
	"github.com/fadilmartias/resume-matcher/internal/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BlobStore interface {
	Upload(ctx context.Context, name string, data []byte) error
	List(ctx context.Context, prefix string) ([]storage.BlobInfo, error)
	Latest(ctx context.Context, prefix string) (*storage.BlobInfo, error)
	Download(ctx context.Context, name string) ([]byte, error)
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

type LinkSigner interface {
	URL(blob string) (string, error)
	Verify(blob, expires, sig string) error
	TTL() time.Duration
}

type TextExtractor interface {
	ExtractText(ctx context.Context, name string, data []byte) (string, error)
}

type ResumeCache interface {
	Get(ctx context.Context, blob string, modified time.Time) (*resume.StructuredResume, error)
	Set(ctx context.Context, blob string, modified time.Time, parsed *resume.StructuredResume) error
}

type noCache struct{}

func (noCache) Get(context.Context, string, time.Time) (*resume.StructuredResume, error) {
	return nil, nil
}

func (noCache) Set(context.Context, string, time.Time, *resume.StructuredResume) error {
	return nil
}

type EnhancementStore interface {
	Create(ctx context.Context, e *model.Enhancement) error
	FindByID(ctx context.Context, id string) (*model.Enhancement, error)
}

type ResumeOptions struct {
	ResumeFolder   string
	EnhancedFolder string
	MaxUploadBytes int64
	ParsePolicy    resume.FallbackPolicy
}

// ResumeUsecase owns the single "current" resume: upload, listing, signed
// downloads, structured parsing and job-tailored rewriting.
type ResumeUsecase struct {
	blobs        BlobStore
	signer       LinkSigner
	extractor    TextExtractor
	completer    service.Completer
	cache        ResumeCache
	enhancements EnhancementStore
	opts         ResumeOptions
	logger       *zap.Logger
	now          func() time.Time
}

func NewResumeUsecase(
	blobs BlobStore,
	signer LinkSigner,
	extractor TextExtractor,
	completer service.Completer,
	cache ResumeCache,
	enhancements EnhancementStore,
	opts ResumeOptions,
	log *zap.Logger,
) *ResumeUsecase {
	if opts.ResumeFolder == "" {
		opts.ResumeFolder = "resume"
	}
	if opts.EnhancedFolder == "" {
		opts.EnhancedFolder = "enhanced_cv"
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 5 * 1024 * 1024
	}
	if cache == nil {
		cache = noCache{}
	}
	return &ResumeUsecase{
		blobs:        blobs,
		signer:       signer,
		extractor:    extractor,
		completer:    completer,
		cache:        cache,
		enhancements: enhancements,
		opts:         opts,
		logger:       logger.OrNop(log),
		now:          time.Now,
	}
}

func (uc *ResumeUsecase) MaxUploadBytes() int64 {
	return uc.opts.MaxUploadBytes
}

// Upload replaces every stored resume with the given file.
func (uc *ResumeUsecase) Upload(ctx context.Context, filename string, data []byte) (*dto.UploadResult, error) {
	const op = "usecase.UploadResume"

	name := filepath.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return nil, apperr.Errorf(apperr.InvalidInput, op, "file name is required")
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !util.AllowedResumeExtensions[ext] {
		return nil, apperr.Errorf(apperr.UnsupportedMedia, op, "unsupported file type %q", ext)
	}
	if len(data) == 0 {
		return nil, apperr.Errorf(apperr.InvalidInput, op, "file is empty")
	}
	if int64(len(data)) > uc.opts.MaxUploadBytes {
		return nil, apperr.Errorf(apperr.InvalidInput, op, "file size is too large (max %d bytes)", uc.opts.MaxUploadBytes)
	}

	replaced, err := uc.blobs.DeletePrefix(ctx, uc.opts.ResumeFolder)
	if err != nil {
		return nil, err
	}

	blob := path.Join(uc.opts.ResumeFolder, name)
	if err := uc.blobs.Upload(ctx, blob, data); err != nil {
		return nil, err
	}
	uc.logger.Info("resume uploaded", zap.String("blob", blob), zap.Int("size", len(data)), zap.Int("replaced", replaced))

	return &dto.UploadResult{Name: name, Blob: blob, Size: len(data), Replaced: replaced}, nil
}

// ListResumes returns the stored resumes, newest first, each with a fresh download link.
func (uc *ResumeUsecase) ListResumes(ctx context.Context) ([]dto.ResumeFile, error) {
	blobs, err := uc.blobs.List(ctx, uc.opts.ResumeFolder)
	if err != nil {
		return nil, err
	}

	files := make([]dto.ResumeFile, 0, len(blobs))
	for _, b := range blobs {
		link, err := uc.signer.URL(b.Name)
		if err != nil {
			return nil, apperr.New(apperr.Internal, "usecase.ListResumes", err)
		}
		files = append(files, dto.ResumeFile{
			Name:         path.Base(b.Name),
			Blob:         b.Name,
			Size:         b.Size,
			LastModified: b.LastModified.UTC().Format(dto.LastModifiedLayout),
			DownloadURL:  link,
		})
	}
	return files, nil
}

// Download returns the blob behind a signed link.
func (uc *ResumeUsecase) Download(ctx context.Context, blob, expires, sig string) ([]byte, error) {
	if err := uc.signer.Verify(blob, expires, sig); err != nil {
		return nil, apperr.New(apperr.Forbidden, "usecase.Download", err)
	}
	return uc.blobs.Download(ctx, blob)
}

// LatestResumeText downloads the newest resume and extracts its text.
func (uc *ResumeUsecase) LatestResumeText(ctx context.Context) (*storage.BlobInfo, string, error) {
	latest, err := uc.blobs.Latest(ctx, uc.opts.ResumeFolder)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.blobs.Download(ctx, latest.Name)
	if err != nil {
		return nil, "", err
	}
	text, err := uc.extractor.ExtractText(ctx, latest.Name, data)
	if err != nil {
		return nil, "", err
	}
	return latest, text, nil
}

// Parse turns the latest resume into a StructuredResume.
func (uc *ResumeUsecase) Parse(ctx context.Context) (*dto.ParsedResume, error) {
	const op = "usecase.ParseResume"

	latest, err := uc.blobs.Latest(ctx, uc.opts.ResumeFolder)
	if err != nil {
		return nil, err
	}

	if cached, err := uc.cache.Get(ctx, latest.Name, latest.LastModified); err != nil {
		uc.logger.Warn("resume cache read failed", zap.Error(err))
	} else if cached != nil {
		return &dto.ParsedResume{Blob: latest.Name, Cached: true, Resume: cached}, nil
	}

	data, err := uc.blobs.Download(ctx, latest.Name)
	if err != nil {
		return nil, err
	}
	text, err := uc.extractor.ExtractText(ctx, latest.Name, data)
	if err != nil {
		return nil, err
	}

	raw, err := uc.completer.Complete(ctx, parseSystemPrompt, renderPrompt(parsePromptTemplate, map[string]string{"RESUME": text}))
	if err != nil {
		return nil, apperr.New(apperr.Upstream, op, err)
	}

	parsed, err := resume.ParseStructuredOutput(raw, uc.opts.ParsePolicy)
	if err != nil {
		uc.logger.Warn("model output is not a structured resume", zap.String("raw", logger.TruncateForLog(raw, 200)))
		return nil, apperr.New(apperr.Upstream, op, err)
	}

	if !parsed.Partial {
		if err := uc.cache.Set(ctx, latest.Name, latest.LastModified, parsed); err != nil {
			uc.logger.Warn("resume cache write failed", zap.Error(err))
		}
	}
	return &dto.ParsedResume{Blob: latest.Name, Resume: parsed}, nil
}

// Enhance rewrites the latest resume for a job, stores it as .docx and returns
// a download link.
func (uc *ResumeUsecase) Enhance(ctx context.Context, req dto.EnhanceRequest) (*dto.EnhanceResult, error) {
	const op = "usecase.EnhanceResume"

	if strings.TrimSpace(req.JobDesc) == "" {
		return nil, apperr.Errorf(apperr.InvalidInput, op, "job description is required")
	}

	latest, text, err := uc.LatestResumeText(ctx)
	if err != nil {
		return nil, err
	}

	record := &model.Enhancement{
		ID:         uuid.New(),
		SourceBlob: latest.Name,
		JobDesc:    req.JobDesc,
		ReqSkills:  req.ReqSkills,
	}

	prompt := renderPrompt(enhancePromptTemplate, map[string]string{
		"JOB_DESC":   req.JobDesc,
		"REQ_SKILLS": req.ReqSkills,
		"RESUME":     text,
	})
	enhanced, err := uc.completer.Complete(ctx, enhanceSystemPrompt, prompt)
	if err != nil {
		uc.saveFailed(ctx, record, err)
		return nil, apperr.New(apperr.Upstream, op, err)
	}

	doc, err := docx.Render(enhanced)
	if err != nil {
		uc.saveFailed(ctx, record, err)
		return nil, apperr.New(apperr.Internal, op, err)
	}

	outBlob := path.Join(uc.opts.EnhancedFolder, fmt.Sprintf("enhanced_resume_%s.docx", uc.now().UTC().Format("20060102150405")))
	if err := uc.blobs.Upload(ctx, outBlob, doc); err != nil {
		uc.saveFailed(ctx, record, err)
		return nil, err
	}

	link, err := uc.signer.URL(outBlob)
	if err != nil {
		return nil, apperr.New(apperr.Internal, op, err)
	}

	record.OutputBlob = outBlob
	record.Status = model.EnhancementStatusCompleted
	if err := uc.enhancements.Create(ctx, record); err != nil {
		return nil, err
	}
	uc.logger.Info("resume enhanced", zap.String("source", latest.Name), zap.String("output", outBlob), zap.String("id", record.ID.String()))

	return &dto.EnhanceResult{
		ID:          record.ID,
		Message:     "Enhanced resume uploaded successfully.",
		Blob:        outBlob,
		DownloadURL: link,
		ExpiresAt:   uc.now().Add(uc.signer.TTL()).UTC(),
	}, nil
}

func (uc *ResumeUsecase) saveFailed(ctx context.Context, record *model.Enhancement, cause error) {
	record.Status = model.EnhancementStatusFailed
	record.Error = cause.Error()
	if err := uc.enhancements.Create(ctx, record); err != nil {
		uc.logger.Warn("could not record failed enhancement", zap.Error(err))
	}
}

func (uc *ResumeUsecase) GetEnhancement(ctx context.Context, id string) (*dto.EnhancementDTO, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.Errorf(apperr.InvalidInput, "usecase.GetEnhancement", "invalid enhancement id %q", id)
	}
	e, err := uc.enhancements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &dto.EnhancementDTO{
		ID:         e.ID,
		Status:     e.Status,
		SourceBlob: e.SourceBlob,
		OutputBlob: e.OutputBlob,
		JobDesc:    e.JobDesc,
		ReqSkills:  e.ReqSkills,
		CreatedAt:  e.CreatedAt,
	}
	if e.OutputBlob != "" {
		link, err := uc.signer.URL(e.OutputBlob)
		if err != nil {
			return nil, apperr.New(apperr.Internal, "usecase.GetEnhancement", err)
		}
		out.DownloadURL = link
	}
	return out, nil
}
