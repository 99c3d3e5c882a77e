package binding

import (
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(s), &data))
	return data
}

func TestInterpolate(t *testing.T) {
	data := decode(t, `{"student":"山田","grade":3,"tags":["a","b"],"class":{"name":"3-B"}}`)

	assert.Equal(t, "山田 練習", Interpolate("${student} 練習", data))
	assert.Equal(t, "grade 3", Interpolate("grade ${grade}", data))
	assert.Equal(t, "b / 3-B", Interpolate("${tags[1]} / ${ class.name }", data))
	assert.Equal(t, "${missing}", Interpolate("${missing}", data), "unresolved placeholders stay")
	assert.Equal(t, "${student}", Interpolate("${student}", nil))
}

func TestResolve(t *testing.T) {
	data := decode(t, `{"teacher":"佐藤","rows":[{"n":1}]}`)

	v, ok := Resolve(data, "data.teacher")
	require.True(t, ok)
	assert.Equal(t, "佐藤", v)

	v, ok = Resolve(data, "rows[0].n")
	require.True(t, ok)
	assert.Equal(t, float64(1), v)

	_, ok = Resolve(data, "rows[3].n")
	assert.False(t, ok)
	_, ok = Resolve(data, "rows[x]")
	assert.False(t, ok)
}

func TestHasPlaceholder(t *testing.T) {
	assert.True(t, HasPlaceholder("a ${b} c"))
	assert.False(t, HasPlaceholder("a $b c"))
}
