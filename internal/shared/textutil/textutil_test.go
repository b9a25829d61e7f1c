package textutil_test

import (
	"strings"
	"testing"

	"go-worktrack/internal/shared/textutil"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", textutil.Truncate("abc", 5))
	assert.Equal(t, "ab", textutil.Truncate("abc", 2))
	assert.Equal(t, "", textutil.Truncate("abc", 0))
	assert.Equal(t, "héé", textutil.Truncate("héééé", 3))
	assert.Len(t, []rune(textutil.Truncate(strings.Repeat("x", 600), 500)), 500)
}

func TestTitleName(t *testing.T) {
	assert.Equal(t, "Travel Food", textutil.TitleName("  travel   FOOD "))
	assert.Equal(t, "Internet", textutil.TitleName("internet"))
}
