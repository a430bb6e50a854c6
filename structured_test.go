package kdtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamreichold/sif-kdtree/codec"
)

func TestStructured(t *testing.T) {
	codecs := map[string]codec.Codec{
		"JSON": codec.JSON{},
		"Gob":  codec.Gob{},
	}

	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(50))
			points := randomPoints(rng, 100)
			tree := New[Point2](append([]Point2(nil), points...))

			data, err := tree.Encode(c)
			require.NoError(t, err)

			restored, err := Decode[Point2, Point2](c, data)
			require.NoError(t, err)

			require.Equal(t, tree.Len(), restored.Len())
			require.NoError(t, restored.Verify())

			for i := 0; i < 10; i++ {
				target := Point2{rng.Float64(), rng.Float64()}

				want, ok := tree.Nearest(target)
				require.True(t, ok)
				got, ok := restored.Nearest(target)
				require.True(t, ok)
				assert.Equal(t, want, got)
			}
		})
	}

	t.Run("DefaultCodec", func(t *testing.T) {
		tree := New[Point2]([]Point2{{1, 2}, {3, 4}})

		data, err := tree.Encode(nil)
		require.NoError(t, err)

		restored, err := Decode[Point2, Point2](nil, data)
		require.NoError(t, err)
		assert.Equal(t, 2, restored.Len())
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := Decode[Point2, Point2](codec.JSON{}, []byte("{"))
		require.Error(t, err)
	})
}
