package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommand(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"ls", []string{"ls"}},
		{"ls -l /tmp", []string{"ls", "-l", "/tmp"}},
		{"  spaced   out  ", []string{"spaced", "out"}},
		{`echo "hello world"`, []string{"echo", "hello world"}},
		{`echo 'single quoted'`, []string{"echo", "single quoted"}},
		{`echo "it's fine"`, []string{"echo", "it's fine"}},
		{`echo a\ b`, []string{"echo", "a b"}},
		{`echo "a\"b"`, []string{"echo", `a"b`}},
		{`run ""`, []string{"run", ""}},
		{`tabs	count`, []string{"tabs", "count"}},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := SplitCommand(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestSplitCommandErrors(t *testing.T) {
	for _, in := range []string{"", "   ", `echo "unclosed`, `echo 'unclosed`} {
		t.Run(in, func(t *testing.T) {
			_, err := SplitCommand(in)
			require.Error(t, err)
		})
	}
}
