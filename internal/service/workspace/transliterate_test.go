package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransliterate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"我爱你", "woaini"},
		{"随便", "suibian"},
		{"Hello 世界!", "Hello shijie!"},
		{"naïve café", "naïve café"},
		{"Café我", "Caféwo"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Transliterate(tt.in))
		})
	}
}

func TestFoldDiacritics(t *testing.T) {
	assert.Equal(t, "naive cafe", foldDiacritics("naïve café"))
	assert.Equal(t, "Cafewo", foldDiacritics(Transliterate("Café我")))
	assert.Equal(t, "我", foldDiacritics("我"))
}

func TestMatchesQuery(t *testing.T) {
	assert.True(t, matchesQuery("woai", "我爱你"))
	assert.True(t, matchesQuery("我爱", "我爱你"))
	assert.False(t, matchesQuery("woaini", "随便"))
	assert.False(t, matchesQuery("Woai", "我爱你"))
	assert.True(t, matchesQuery("", "anything"))
	assert.False(t, matchesQuery("x"))
	assert.True(t, matchesQuery("info", "title", "has info"))

	// Accented letters are kept next to pinyin, and folding only widens
	assert.True(t, matchesQuery("éwo", "Café我"))
	assert.True(t, matchesQuery("Cafewo", "Café我"))
	assert.True(t, matchesQuery("Café", "Café我"))
	assert.False(t, matchesQuery("ewo", "Cafè"))
}

func TestValidationRules(t *testing.T) {
	assert.NoError(t, validateRole("assistant"))
	assert.Error(t, validateRole("narrator"))
	assert.NoError(t, validateStatus("streaming"))
	assert.Error(t, validateStatus(""))

	long := make([]byte, 5000)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, checkPathLength("/"+string(long)))
	assert.NoError(t, checkPathLength("/short"))
}
