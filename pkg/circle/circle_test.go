package circle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_EveryAlias(t *testing.T) {
	for alias, want := range Aliases() {
		t.Run(alias, func(t *testing.T) {
			got, ok := Normalize(alias)
			require.True(t, ok, "alias %q not recognised", alias)
			assert.Equal(t, want, got)
		})
	}
}

func TestNormalize_CaseAndPunctuation(t *testing.T) {
	tests := []struct {
		input string
		want  Circle
	}{
		{"kerala", Kerala},
		{"  Kerala  ", Kerala},
		{"KERALA CIRCLE", Kerala},
		{"BSNL Kerala Circle", Kerala},
		{"jammu   &   kashmir", JammuKashmir},
		{"j & k", JammuKashmir},
		{"up (e)", UPEast},
		{"U.P.(W)", UPWest},
		{"ne - ii", NorthEast2},
		{"north east-1", NorthEast1},
		{"tamil-nadu", TamilNadu},
		{"a.p", AndhraPradesh},
		{"andaman_nicobar", AndamanNicobar},
		{"West-Bengal Telecom Circle", WestBengal},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Normalize(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Unknown(t *testing.T) {
	for _, input := range []string{"", "   ", "Circle", "Atlantis", "UP", "NE", "123"} {
		t.Run(input, func(t *testing.T) {
			got, ok := Normalize(input)
			assert.False(t, ok)
			assert.Empty(t, got)
			assert.False(t, IsValid(input))
		})
	}
}

func TestAll_CoversEveryCanonicalCode(t *testing.T) {
	all := All()
	assert.Len(t, all, 27)

	// every canonical code must map to itself
	for _, c := range all {
		got, ok := Normalize(string(c))
		require.True(t, ok, "canonical code %s not self-mapped", c)
		assert.Equal(t, c, got)
	}
}

func TestMustNormalize(t *testing.T) {
	assert.Equal(t, Gujarat, MustNormalize("gujrat"))
	assert.Panics(t, func() { MustNormalize("nowhere") })
}
