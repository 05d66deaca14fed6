package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"plain text", "hello", false},
		{"text with padding", "  hello  ", false},
		{"empty", "", true},
		{"spaces only", "   ", true},
		{"tabs and newlines", "\t\n\r\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAsset_Preview(t *testing.T) {
	a := Asset{RawText: "héllo world"}

	assert.Equal(t, "héllo world", a.Preview(0))
	assert.Equal(t, "héllo world", a.Preview(11))
	assert.Equal(t, "héllo world", a.Preview(50))
	assert.Equal(t, "héllo…", a.Preview(5))
}

func TestSearchResult_Count(t *testing.T) {
	r := &SearchResult{Assets: []Asset{{ID: 1}, {ID: 2}}}
	assert.Equal(t, 2, r.Count())

	empty := &SearchResult{}
	assert.Equal(t, 0, empty.Count())
}
