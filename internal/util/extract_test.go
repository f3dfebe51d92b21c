package util

import (
	"context"
	"testing"

	"github.com/fadilmartias/resume-matcher/internal/apperr"
	"github.com/fadilmartias/resume-matcher/internal/docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_TXT(t *testing.T) {
	e := NewTextExtractor(nil, nil)

	text, err := e.ExtractText(context.Background(), "cv.TXT", []byte("  Jane Doe\nGo developer \n"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo developer", text)
}

func TestExtractText_Errors(t *testing.T) {
	e := NewTextExtractor(nil, nil)
	ctx := context.Background()

	_, err := e.ExtractText(ctx, "cv.odt", []byte("x"))
	assert.Equal(t, apperr.UnsupportedMedia, apperr.KindOf(err))

	_, err = e.ExtractText(ctx, "cv.txt", []byte("   "))
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	_, err = e.ExtractText(ctx, "cv.txt", []byte{0xff, 0xfe})
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	_, err = e.ExtractText(ctx, "cv.docx", []byte("not a zip"))
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))

	_, err = e.ExtractText(ctx, "cv.pdf", []byte("not a pdf"))
	assert.Error(t, err)
}

func TestExtractText_DOCX(t *testing.T) {
	data, err := docx.Render("**Jane Doe**\n### Skills\n- Go & SQL\nBuilt services")
	require.NoError(t, err)

	text, err := NewTextExtractor(nil, nil).ExtractText(context.Background(), "cv.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills\nGo & SQL\nBuilt services", text)
}
