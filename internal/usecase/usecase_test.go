package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/resume-matcher/internal/apperr"
	"github.com/fadilmartias/resume-matcher/internal/model"
	"github.com/fadilmartias/resume-matcher/internal/resume"
	"github.com/fadilmartias/resume-matcher/internal/storage"
	"github.com/fadilmartias/resume-matcher/internal/util"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, user)
	return f.reply, f.err
}

type memEnhancements struct {
	mu    sync.Mutex
	items map[string]*model.Enhancement
}

func newMemEnhancements() *memEnhancements {
	return &memEnhancements{items: map[string]*model.Enhancement{}}
}

func (m *memEnhancements) Create(_ context.Context, e *model.Enhancement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	cp.CreatedAt = time.Now()
	m.items[e.ID.String()] = &cp
	return nil
}

func (m *memEnhancements) FindByID(_ context.Context, id string) (*model.Enhancement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[id]
	if !ok {
		return nil, apperr.Errorf(apperr.NotFound, "memEnhancements", "not found")
	}
	return e, nil
}

type countingCache struct {
	mu    sync.Mutex
	items map[string]*resume.StructuredResume
	sets  int
}

func (c *countingCache) Get(_ context.Context, blob string, modified time.Time) (*resume.StructuredResume, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[blob+modified.String()], nil
}

func (c *countingCache) Set(_ context.Context, blob string, modified time.Time, parsed *resume.StructuredResume) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil {
		c.items = map[string]*resume.StructuredResume{}
	}
	c.items[blob+modified.String()] = parsed
	c.sets++
	return nil
}

var storeSeq int

type fixture struct {
	blobs        *storage.BlobStore
	signer       *storage.Signer
	completer    *fakeCompleter
	enhancements *memEnhancements
	uc           *ResumeUsecase
}

func newFixture(t *testing.T, cache ResumeCache) *fixture {
	t.Helper()
	storeSeq++
	blobs := storage.NewBlobStore(fmt.Sprintf("mem://localhost/usecase%d/gtfydemo", storeSeq))
	signer, err := storage.NewSigner("secret", "http://localhost:8080", time.Hour)
	require.NoError(t, err)

	f := &fixture{
		blobs:        blobs,
		signer:       signer,
		completer:    &fakeCompleter{},
		enhancements: newMemEnhancements(),
	}
	f.uc = NewResumeUsecase(blobs, signer, util.NewTextExtractor(nil, nil), f.completer, cache, f.enhancements,
		ResumeOptions{MaxUploadBytes: 64}, nil)
	f.uc.now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }
	return f
}

func (f *fixture) upload(t *testing.T, name, content string) {
	t.Helper()
	_, err := f.uc.Upload(context.Background(), name, []byte(content))
	require.NoError(t, err)
}

var errBoom = errors.New("boom")

func repeat(s string, n int) string {
	return strings.Repeat(s, n)
}
