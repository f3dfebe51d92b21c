package handler

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/dto"
	"github.com/fadilmartias/resume-matcher/internal/middleware"
	"github.com/fadilmartias/resume-matcher/internal/response"
	"github.com/fadilmartias/resume-matcher/internal/storage"
	"github.com/fadilmartias/resume-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ResumeService interface {
	MaxUploadBytes() int64
	Upload(ctx context.Context, filename string, data []byte) (*dto.UploadResult, error)
	ListResumes(ctx context.Context) ([]dto.ResumeFile, error)
	Download(ctx context.Context, blob, expires, sig string) ([]byte, error)
	Parse(ctx context.Context) (*dto.ParsedResume, error)
	Enhance(ctx context.Context, req dto.EnhanceRequest) (*dto.EnhanceResult, error)
	GetEnhancement(ctx context.Context, id string) (*dto.EnhancementDTO, error)
}

type ResumeHandler struct {
	uc ResumeService
}

func NewResumeHandler(uc ResumeService) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/uploadToBlobStorage", h.Upload)
	router.Get("/getFilesFromBlobStorage", h.List)
	router.Get(strings.TrimPrefix(storage.DownloadPath, APIPrefix), h.Download)
	router.Post("/parseResume", middleware.RateLimiter(10, time.Minute), h.Parse)
	router.Post("/enhanceCV", middleware.RateLimiter(5, time.Minute), h.Enhance)
	router.Get("/enhancements/:id", h.GetEnhancement)
}

func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "file is required",
		}, err)
	}

	maxBytes := h.uc.MaxUploadBytes()
	if file.Size > maxBytes {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("file size is too large (max %s)", humanSize(maxBytes)),
		})
	}

	f, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "cannot read uploaded file",
		}, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "cannot read uploaded file",
		}, err)
	}

	result, err := h.uc.Upload(c.UserContext(), file.Filename, data)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: util.PublicMessage(err, "failed to upload resume"),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: fmt.Sprintf("File %s uploaded successfully.", result.Name),
		Data:    result,
	})
}

func (h *ResumeHandler) List(c *fiber.Ctx) error {
	files, err := h.uc.ListResumes(c.UserContext())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: util.PublicMessage(err, "failed to list resumes"),
		}, err)
	}

	pagination, start, end := response.Paginate(c.QueryInt("page", 1), c.QueryInt("page_size", 20), len(files))
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get resumes",
		Data:       files[start:end],
		Pagination: &pagination,
	})
}

func (h *ResumeHandler) Download(c *fiber.Ctx) error {
	blob := c.Query("blob")
	data, err := h.uc.Download(c.UserContext(), blob, c.Query("expires"), c.Query("sig"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: util.PublicMessage(err, "cannot download file"),
		}, err)
	}
	c.Attachment(path.Base(blob))
	return c.Send(data)
}

func (h *ResumeHandler) Parse(c *fiber.Ctx) error {
	parsed, err := h.uc.Parse(c.UserContext())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: util.PublicMessage(err, "failed to parse resume"),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success parse resume",
		Data:    parsed,
	})
}

func (h *ResumeHandler) Enhance(c *fiber.Ctx) error {
	var req dto.EnhanceRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.JobDesc == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "job_desc is required",
		}, util.NewFormError("job_desc is required", map[string]string{"job_desc": "required"}))
	}

	result, err := h.uc.Enhance(c.UserContext(), req)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: util.PublicMessage(err, "failed to enhance resume"),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: result.Message,
		Data:    result,
	})
}

func (h *ResumeHandler) GetEnhancement(c *fiber.Ctx) error {
	enhancement, err := h.uc.GetEnhancement(c.UserContext(), c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: util.PublicMessage(err, "enhancement not found"),
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get enhancement",
		Data:    enhancement,
	})
}

func humanSize(n int64) string {
	if n >= 1024*1024 && n%(1024*1024) == 0 {
		return fmt.Sprintf("%dMB", n/(1024*1024))
	}
	return fmt.Sprintf("%d bytes", n)
}
