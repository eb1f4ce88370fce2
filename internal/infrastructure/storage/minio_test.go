package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMedia_AudioRules(t *testing.T) {
	assert.NoError(t, ValidateMedia(CategoryAudio, 15<<20, "audio/mpeg"))
	assert.ErrorIs(t, ValidateMedia(CategoryAudio, 15<<20+1, "audio/mpeg"), ErrMediaTooLarge)
	assert.ErrorIs(t, ValidateMedia(CategoryAudio, 1<<10, "audio/ogg"), ErrUnsupportedMediaType)
}

func TestValidateMedia_VideoRules(t *testing.T) {
	assert.NoError(t, ValidateMedia(CategoryVideo, 50<<20, "video/mp4"))
	assert.ErrorIs(t, ValidateMedia(CategoryVideo, 50<<20+1, "video/mp4"), ErrMediaTooLarge)
	assert.ErrorIs(t, ValidateMedia(CategoryVideo, 1<<10, "video/webm"), ErrUnsupportedMediaType)
}

func TestValidateMedia_ImageRules(t *testing.T) {
	for _, mime := range []string{"image/jpeg", "image/png", "image/webp"} {
		assert.NoError(t, ValidateMedia(CategoryImage, 5<<20, mime), mime)
	}
	assert.ErrorIs(t, ValidateMedia(CategoryImage, 5<<20+1, "image/png"), ErrMediaTooLarge)
	assert.ErrorIs(t, ValidateMedia(CategoryImage, 1<<10, "image/gif"), ErrUnsupportedMediaType)
}

func TestValidateMedia_UnknownCategory(t *testing.T) {
	assert.ErrorIs(t, ValidateMedia(Category("document"), 1, "application/pdf"), ErrUnsupportedMediaType)
}
