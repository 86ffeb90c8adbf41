package task

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityTokens(t *testing.T) {
	cases := []struct {
		priority Priority
		token    string
	}{
		{Low, "L"},
		{Medium, "M"},
		{High, "H"},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			tok, err := tc.priority.Token()
			require.NoError(t, err)
			assert.Equal(t, tc.token, tok)

			parsed, err := ParsePriority(tc.token)
			require.NoError(t, err)
			assert.Equal(t, tc.priority, parsed)

			encoded, err := json.Marshal(tc.priority)
			require.NoError(t, err)
			assert.Equal(t, `"`+tc.token+`"`, string(encoded))

			var back Priority
			require.NoError(t, json.Unmarshal(encoded, &back))
			assert.Equal(t, tc.priority, back)
		})
	}
}

func TestPriorityRejectsUnknownToken(t *testing.T) {
	for _, token := range []string{"U", "l", "low", ""} {
		_, err := ParsePriority(token)
		assert.Error(t, err, "token %q should not parse", token)
	}
}

func TestPriorityString(t *testing.T) {
	assert.Equal(t, "Low", Low.String())
	assert.Equal(t, "Medium", Medium.String())
	assert.Equal(t, "High", High.String())
}
