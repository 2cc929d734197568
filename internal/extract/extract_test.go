package extract

import (
	"testing"

	"backstage-brain-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPlain(t *testing.T) {
	text, err := Text(models.FileTypeText, []byte("Soundcheck at 16:30"))
	require.NoError(t, err)
	assert.Equal(t, "Soundcheck at 16:30", text)
}

func TestTextPlainRejectsInvalidUTF8(t *testing.T) {
	_, err := Text(models.FileTypeText, []byte{0xff, 0xfe, 0xfd})
	assert.Error(t, err)
}

func TestTextRejectsUnsupportedMediaType(t *testing.T) {
	_, err := Text("image/png", []byte("not really a png"))
	assert.Error(t, err)
}

func TestTextPDFRejectsGarbage(t *testing.T) {
	_, err := Text(models.FileTypePDF, []byte("definitely not a pdf"))
	assert.Error(t, err)
}
