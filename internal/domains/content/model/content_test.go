package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTypeValid(t *testing.T) {
	assert.True(t, ContentTypeTrack.Valid())
	assert.True(t, ContentTypeReel.Valid())
	assert.False(t, ContentType("podcast").Valid())
	assert.False(t, ContentType("").Valid())
}
