package task

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importFixture = `
[
    {
        "id"          : 1,
        "description" : "test",
        "entry"       : "20150619T165438Z",
        "modified"    : "20160327T164007Z",
        "project"     : "self.software",
        "status"      : "waiting",
        "tags"        : ["check", "this", "out"],
        "uuid"        : "8ca953d5-18b4-4eb9-bd56-18f2e5b752f0",
        "wait"        : "20160508T164007Z",
        "urgency"     : 0.583562
    },
    {
        "id"          : 2,
        "description" : "another test",
        "entry"       : "20150623T181011Z",
        "priority"    : "L",
        "status"      : "waiting",
        "uuid"        : "54d49ffc-a06b-4dd8-b7d1-db5f50594312",
        "annotations" : [
            {
                "entry"       : "20150623T181018Z",
                "description" : "fooooooobar"
            }
        ],
        "urgency"     : 3.16164
    },
    {
        "id"          : 3,
        "description" : "a third one",
        "entry"       : "20150919T222323Z",
        "status"      : "pending",
        "uuid"        : "08ee8dce-cb97-4c8c-9940-c9a440e90119",
        "urgency"     : 1.07397
    }
]
`

func TestImportArray(t *testing.T) {
	tasks, err := Import[TW26](strings.NewReader(importFixture))
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	assert.Equal(t, "test", tasks[0].Description)
	assert.Equal(t, Waiting, tasks[0].Status)
	require.NotNil(t, tasks[1].Priority)
	assert.Equal(t, Low, *tasks[1].Priority)
	require.Len(t, tasks[1].Annotations, 1)
	assert.Equal(t, "fooooooobar", tasks[1].Annotations[0].Description)
	assert.Equal(t, Pending, tasks[2].Status)
}

func TestImportArrayWithLegacyDepends(t *testing.T) {
	payload := `[{
		"description": "some description",
		"entry": "20150619T165438Z",
		"status": "waiting",
		"uuid": "8ca953d5-18b4-4eb9-bd56-18f2e5b752f0",
		"depends": "8ca953d5-18b5-4eb9-bd56-18f2e5b752f0"
	}]`
	tasks, err := Import[TW25](strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Len(t, tasks[0].Depends, 1)
}

func TestImportIsAllOrNothing(t *testing.T) {
	payload := `[
		{"description": "good", "entry": "20150619T165438Z", "status": "pending", "uuid": "8ca953d5-18b4-4eb9-bd56-18f2e5b752f0"},
		{"description": "bad", "entry": "20150619T165438Z", "status": "nope", "uuid": "54d49ffc-a06b-4dd8-b7d1-db5f50594312"}
	]`
	tasks, err := Import[TW26](strings.NewReader(payload))
	require.Error(t, err)
	assert.Nil(t, tasks)

	var ferr *FieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "status", ferr.Field)
}

func TestImportRequiresAnArray(t *testing.T) {
	_, err := Import[TW26](strings.NewReader(`{"description": "x"}`))
	assert.ErrorIs(t, err, ErrNotAnArray)

	_, err = Import[TW26](strings.NewReader(`not json at all`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotAnArray)
}

func TestImportTaskSingleObject(t *testing.T) {
	payload := `{
		"description": "some description",
		"entry": "20150619T165438Z",
		"status": "waiting",
		"uuid": "8ca953d5-18b4-4eb9-bd56-18f2e5b752f0"
	}`
	task, err := ImportTask[TW26]([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, "some description", task.Description)
	assert.Equal(t, Waiting, task.Status)
}

func TestImportLines(t *testing.T) {
	valid := `{"description":"some description","entry":"20150619T165438Z","status":"waiting","uuid":"8ca953d5-18b4-4eb9-bd56-18f2e5b752f0"}`

	t.Run("all valid", func(t *testing.T) {
		results := ImportLines[TW26](strings.NewReader(valid + "\n" + valid))
		require.Len(t, results, 2)
		for _, res := range results {
			require.NoError(t, res.Err)
			assert.Equal(t, Waiting, res.Task.Status)
		}
	})

	t.Run("per-line failure does not abort the batch", func(t *testing.T) {
		truncated := valid[:40]
		input := valid + "\n" + truncated + "\n\n"
		results := ImportLines[TW26](strings.NewReader(input))
		require.Len(t, results, 2)
		assert.NoError(t, results[0].Err)
		assert.Error(t, results[1].Err)
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		input := "\n\n" + valid + "\n   \n" + valid + "\n"
		results := ImportLines[TW26](strings.NewReader(input))
		require.Len(t, results, 2)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ImportLines[TW26](strings.NewReader("")))
	})
}
