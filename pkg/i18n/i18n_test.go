package i18n

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnglishCatalogueIsComplete(t *testing.T) {
	for k := Key(0); k < keyCount; k++ {
		assert.NotEmpty(t, english[k], "missing English text for %s", k)
		assert.NotEqual(t, "unknown", k.String(), "missing name for key %d", int(k))
	}
}

func TestLookupFallback(t *testing.T) {
	t.Run("Locale Entry Used When Present", func(t *testing.T) {
		assert.Equal(t, swahili[KeyGoodbye], Lookup(Swahili, KeyGoodbye))
	})

	t.Run("Empty Locale Entry Falls Back To English", func(t *testing.T) {
		assert.Empty(t, luganda[KeyHistory])
		assert.Equal(t, english[KeyHistory], Lookup(Luganda, KeyHistory))
	})

	t.Run("Unknown Language Falls Back To English", func(t *testing.T) {
		assert.Equal(t, english[KeyMainMenu], Lookup(Lang("fr"), KeyMainMenu))
	})

	t.Run("Out Of Range Key Renders Its Name", func(t *testing.T) {
		assert.Equal(t, "Key(999)", Lookup(English, Key(999)))
	})
}

func TestT(t *testing.T) {
	assert.Equal(t, "Enter amount in UGX:", T(English, KeyEnterAmount, "UGX"))
	assert.True(t, strings.HasPrefix(T(Swahili, KeyCodeInvalid, 2), "Nambari si sahihi."))
	assert.Equal(t, english[KeySetPin], T("", KeySetPin))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Lang
	}{
		{"", English},
		{"en", English},
		{"sw", Swahili},
		{"sw-KE", Swahili},
		{"lg", Luganda},
		{"not a tag!!", English},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}
