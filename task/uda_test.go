package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestUDANamesAreSorted(t *testing.T) {
	u := UDA{
		"zeta":  UDAUint(1),
		"alpha": UDAString("a"),
		"mid":   UDAFloat(0.5),
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, u.Names())
}

func TestUDAIsEmpty(t *testing.T) {
	var nilMap UDA
	assert.True(t, nilMap.IsEmpty())
	assert.True(t, UDA{}.IsEmpty())
	assert.False(t, UDA{"x": UDAUint(1)}.IsEmpty())
}

func TestUDAGet(t *testing.T) {
	u := UDA{"estimate": UDAString("30min")}

	v, ok := u.Get("estimate")
	require.True(t, ok)
	assert.Equal(t, UDAString("30min"), v)

	_, ok = u.Get("missing")
	assert.False(t, ok)
}

func TestSniffUDAValue(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want UDAValue
	}{
		{"quoted string", `"value"`, UDAString("value")},
		{"quoted number", `"1234"`, UDAString("1234")},
		{"bare integer", `1234`, UDAUint(1234)},
		{"zero", `0`, UDAUint(0)},
		{"fractional", `-17.1234`, UDAFloat(-17.1234)},
		{"negative integer literal", `-5`, UDAFloat(-5)},
		{"exponent form", `1e3`, UDAFloat(1000)},
		{"uint64 boundary", `18446744073709551615`, UDAUint(18446744073709551615)},
		{"uint64 overflow", `18446744073709551616`, UDAFloat(18446744073709551616)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := sniffUDAValue(gjson.Parse(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSniffUDAValueRejectsNonScalars(t *testing.T) {
	for _, raw := range []string{`{"a":1}`, `[1]`, `true`, `false`, `null`} {
		_, err := sniffUDAValue(gjson.Parse(raw))
		assert.Error(t, err, "raw %s should be rejected", raw)
	}
}

func TestUDAValueJSON(t *testing.T) {
	cases := []struct {
		value UDAValue
		want  string
	}{
		{UDAString("a \"quoted\" value"), `"a \"quoted\" value"`},
		{UDAUint(1234), `1234`},
		{UDAFloat(-17.1234), `-17.1234`},
	}
	for _, tc := range cases {
		got, err := tc.value.appendJSON(nil)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(got))
	}
}
