package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewParser_DefaultsMaxPages(t *testing.T) {
	assert.Equal(t, DefaultMaxPages, NewParser(0).maxPages)
	assert.Equal(t, 3, NewParser(3).maxPages)
}

func TestParser_ExtractText_RejectsGarbage(t *testing.T) {
	_, err := NewParser(0).ExtractText(context.Background(), []byte("not a pdf at all"))

	assert.Error(t, err)
}
