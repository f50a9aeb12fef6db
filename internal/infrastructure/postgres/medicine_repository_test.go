package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike_EscapaMetacaracteres(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`c\d`, `c\\d`},
		{"ibuprofeno 400", "ibuprofeno 400"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, escapeLike(tc.in), "entrada: %q", tc.in)
	}
}
