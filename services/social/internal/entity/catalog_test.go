package entity

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	for _, bad := range []string{"", "Movie", "TV", "film", "movies"} {
		_, err := ParseKind(bad)
		assert.True(t, errors.Is(err, ErrUnknownKind), bad)
	}
}

func TestKind_HasCast(t *testing.T) {
	assert.True(t, KindMovie.HasCast())
	assert.True(t, KindTV.HasCast())
	assert.False(t, KindNovel.HasCast())
	assert.False(t, KindUploader.HasCast())
}

func TestKind_JSON(t *testing.T) {
	out, err := json.Marshal(Mark{UserID: "u", Kind: KindNovel, TargetID: 7})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"kind":"novel"`)

	var m Mark
	require.NoError(t, json.Unmarshal(out, &m))
	assert.Equal(t, KindNovel, m.Kind)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"podcast"}`), &m))

	_, err = json.Marshal(Mark{Kind: Kind(42)})
	assert.Error(t, err)
	assert.False(t, Kind(0).Valid())
}
