package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommand(t *testing.T) {
	cmd := NewCommand("abc", "move_node", map[string]any{"nodeId": "1"})

	assert.Equal(t, "abc", cmd.ID)
	assert.Equal(t, "command", cmd.Type)
	assert.Equal(t, "move_node", cmd.Command)
	assert.Equal(t, "1", cmd.Params["nodeId"])
}

func TestNewCommand_NilParamsEncodeAsEmptyObject(t *testing.T) {
	cmd := NewCommand("abc", "get_selection", nil)

	data, err := json.Marshal(cmd)
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"abc","type":"command","command":"get_selection","params":{}}`, string(data))
}

func TestReply_Success(t *testing.T) {
	var r Reply

	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc","result":{"name":"Rect"}}`), &r))

	assert.Equal(t, "abc", r.ID())
	assert.False(t, r.IsError())
	assert.Equal(t, "Rect", r.Result()["name"])
}

func TestReply_Error(t *testing.T) {
	var r Reply

	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc","error":"node not found"}`), &r))

	assert.Equal(t, "abc", r.ID())
	assert.True(t, r.IsError())
	assert.Equal(t, "node not found", r.ErrorMessage())
	assert.Nil(t, r.Result())
}

func TestReply_MissingFields(t *testing.T) {
	r := Reply{}

	assert.Empty(t, r.ID())
	assert.False(t, r.IsError())
	assert.Empty(t, r.ErrorMessage())
	assert.Nil(t, r.Result())
}

func TestReply_NonStringIDIgnored(t *testing.T) {
	r := Reply{"id": 42.0, "result": map[string]any{}}

	assert.Empty(t, r.ID())
}
