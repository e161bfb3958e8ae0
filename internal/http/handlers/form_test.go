package handlers

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/intake"
)

func TestReadMultipartKeepsOrder(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "AF1"))
	require.NoError(t, w.WriteField("Upper", "Leather"))

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="images"; filename=""`)
	h.Set("Content-Type", "application/octet-stream")
	_, err := w.CreatePart(h)
	require.NoError(t, err)

	require.NoError(t, w.WriteField("Sole", "Rubber"))
	fw, err := w.CreateFormFile("manual", "manual.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF"))
	require.NoError(t, w.Close())

	p, err := readMultipart(buf.Bytes(), w.Boundary())
	require.NoError(t, err)
	assert.Equal(t, []intake.Field{
		{Key: "name", Value: "AF1"},
		{Key: "Upper", Value: "Leather"},
		{Key: "Sole", Value: "Rubber"},
	}, p.Fields)
	require.Len(t, p.Files, 2)
	assert.Equal(t, "images", p.Files[0].Key)
	assert.Empty(t, p.Files[0].Data)
	assert.Equal(t, "manual", p.Files[1].Key)
	assert.Equal(t, "manual.pdf", p.Files[1].Filename)
}

func TestReadMultipartMissingBoundary(t *testing.T) {
	_, err := readMultipart([]byte("x"), "")
	assert.Error(t, err)
}
