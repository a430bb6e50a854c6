package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string
	Count int
	Tags  []string
}

func TestCodecs(t *testing.T) {
	codecs := []Codec{JSON{}, Gob{}}

	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			in := sample{Name: "alpha", Count: 3, Tags: []string{"x", "y"}}

			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out sample
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	c, ok = ByName("gob")
	require.True(t, ok)
	assert.Equal(t, "gob", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "json", Default.Name())
}
