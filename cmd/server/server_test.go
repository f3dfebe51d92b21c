package main

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fadilmartias/resume-matcher/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestReadJobsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	content := `jobs:
  - id: J1
    title: Backend Engineer
    company: Acme
    req_skills: Go, SQL
    job_desc: |
      Build services.
      Own the database.
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	req, err := readJobsFile(path)
	require.NoError(t, err)
	require.Len(t, req.Jobs, 1)
	assert.Equal(t, "J1", req.Jobs[0].ID)
	assert.Equal(t, "Go, SQL", req.Jobs[0].ReqSkills)
	assert.Equal(t, "Build services.\nOwn the database.\n", req.Jobs[0].JobDesc)

	_, err = readJobsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewFiberApp(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Name: "test", Env: "production"}, Storage: config.StorageConfig{MaxUploadBytes: 1024}}
	app := newFiberApp(cfg, zap.NewNop())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/livez", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "cross-origin", resp.Header.Get("Cross-Origin-Resource-Policy"))
}

func TestSetupDB_ClosesPoolWhenMigrationFails(t *testing.T) {
	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=test dbname=test sslmode=disable"),
		&gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	_, err = setupDB(db, false, func(*gorm.DB) error { return errors.New("no vector extension") })
	require.EqualError(t, err, "no vector extension")
	assert.ErrorContains(t, sqlDB.Ping(), "database is closed")
}

func TestSetupDB_PoolSizing(t *testing.T) {
	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=test dbname=test sslmode=disable"),
		&gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	got, err := setupDB(db, true, func(*gorm.DB) error { return nil })
	require.NoError(t, err)
	sqlDB, err := got.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	assert.Equal(t, 200, sqlDB.Stats().MaxOpenConnections)
}
