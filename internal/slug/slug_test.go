package slug

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		title string
		id    string
		want  string
	}{
		{"example", "Sunset Villa Renovation", "abc12345-0000-4000-8000-000000000000", "sunset-villa-renovation-abc12345"},
		{"punctuation runs", "  Kitchen -- & Bath!!  ", "ABCDEF12-aaaa", "kitchen-bath-abcdef12"},
		{"non ascii collapses", "Кухня Loft", "12345678-9", "loft-12345678"},
		{"empty title", "", "deadbeef-1", "-deadbeef"},
		{"only symbols", "***", "deadbeef-1", "-deadbeef"},
		{"short id", "Terrace", "abc", "terrace-abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.title, tt.id))
		})
	}
}

func TestBuildTruncates(t *testing.T) {
	title := strings.Repeat("long title ", 20)
	id := uuid.NewString()

	s := Build(title, id)
	assert.LessOrEqual(t, len(s), MaxTitleLen+1+ShortIDLen)
	assert.True(t, strings.HasSuffix(s, "-"+id[:8]))
	assert.Equal(t, s, Build(title, id))
	assert.Equal(t, "long-title-long-title-long-title-long-title-long-t-"+id[:8], s)
}

// Обрезка идёт после trim, поэтому дефис на границе сохраняется.
func TestBuildTruncatesAtHyphen(t *testing.T) {
	title := strings.Repeat("a", MaxTitleLen-1) + " tail"
	s := Build(title, "deadbeef-1")
	assert.Equal(t, strings.Repeat("a", MaxTitleLen-1)+"--deadbeef", s)
	assert.Equal(t, "deadbeef", Suffix(s))
}

func TestBuildDeterministic(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := uuid.NewString()
		title := "Project #" + id[:i%8] + " in the city"
		a, b := Build(title, id), Build(title, id)
		assert.Equal(t, a, b)
		assert.LessOrEqual(t, len(a), 59)
		assert.Equal(t, ShortID(id), Suffix(a))
	}
}

func TestSuffix(t *testing.T) {
	assert.Equal(t, "abc12345", Suffix("sunset-villa-renovation-abc12345"))
	assert.Equal(t, "abc12345", Suffix("ABC12345"))
	assert.Equal(t, "", Suffix("trailing-"))
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/projects/villa-abc12345", Path("Villa", "abc12345-ffff"))
}
