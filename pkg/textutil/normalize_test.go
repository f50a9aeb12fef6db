package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Farmacia-api/pkg/textutil"
)

func TestNormalize_QuitaTildesYMayusculas(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Acetaminofén", "acetaminofen"},
		{"IBUPROFENO 400mg", "ibuprofeno 400mg"},
		{"Ácido Acetilsalicílico", "acido acetilsalicilico"},
		{"  Loratadina   10 mg  ", "loratadina 10 mg"},
		{"", ""},
		{"   ", ""},
		{"ñoño", "nono"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, textutil.Normalize(tc.in), "entrada: %q", tc.in)
	}
}

func TestNormalize_EsIdempotente(t *testing.T) {
	in := "Clorfenamina Maleato 4mg"
	once := textutil.Normalize(in)
	assert.Equal(t, once, textutil.Normalize(once))
}
