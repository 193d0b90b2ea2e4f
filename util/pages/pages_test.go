package pages

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	cases := []struct {
		from, size    int
		limit, offset int
	}{
		{0, 10, 10, 0},
		{5, 10, 10, 0},  // mid-page from rounds down to page 0
		{10, 10, 10, 10},
		{25, 10, 10, 20}, // page 2
		{3, 3, 3, 3},
		{0, 0, 10, 0}, // size falls back to the default
	}
	for _, tc := range cases {
		limit, offset := Page(tc.from, tc.size)
		require.Equal(t, tc.limit, limit, "from=%d size=%d", tc.from, tc.size)
		require.Equal(t, tc.offset, offset, "from=%d size=%d", tc.from, tc.size)
	}
}

func TestFromQuery_Defaults(t *testing.T) {
	f, s, err := FromQuery("", "")
	require.NoError(t, err)
	require.Equal(t, 0, f)
	require.Equal(t, 10, s)
}

func TestFromQuery(t *testing.T) {
	f, s, err := FromQuery("20", "5")
	require.NoError(t, err)
	require.Equal(t, 20, f)
	require.Equal(t, 5, s)
}

func TestFromQuery_Invalid(t *testing.T) {
	for _, tc := range [][2]string{
		{"-1", "10"},
		{"abc", "10"},
		{"0", "0"},
		{"0", "-5"},
		{"0", "abc"},
	} {
		_, _, err := FromQuery(tc[0], tc[1])
		require.Error(t, err, "from=%q size=%q", tc[0], tc[1])
	}
}
