package installment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	m, err := Parse("2/12")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Current)
	assert.Equal(t, 12, m.Total)
}

func TestParse_SingleInstallment(t *testing.T) {
	m, err := Parse("1/1")
	require.NoError(t, err)
	assert.Equal(t, Marker{Current: 1, Total: 1}, m)
}

func TestParse_Invalid(t *testing.T) {
	cases := []string{"", "3", "a/b", "3/", "/4", "0/4", "5/4", "2/0", "-1/4"}
	for _, c := range cases {
		_, err := Parse(c)
		assert.Error(t, err, "input %q", c)
	}
}

func TestString_RoundTrip(t *testing.T) {
	m, err := Parse("3/10")
	require.NoError(t, err)
	assert.Equal(t, "3/10", m.String())
}
