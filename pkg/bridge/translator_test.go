package bridge

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/theapemachine/a2a-bridge/pkg/a2a"
	rpcerrors "github.com/theapemachine/a2a-bridge/pkg/errors"
	"github.com/theapemachine/a2a-bridge/pkg/jsonrpc"
)

func TestWrap(t *testing.T) {
	msg := Wrap("hello")

	assert.Equal(t, a2a.RoleUser, msg.Role)
	assert.Equal(t, []a2a.Part{{Kind: a2a.PartKindText, Text: "hello"}}, msg.Parts)

	buf, err := json.Marshal(msg)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"role":"user","parts":[{"kind":"text","text":"hello"}]}`, string(buf))
}

func TestWrapEmptyMessage(t *testing.T) {
	buf, err := json.Marshal(Wrap(""))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"role":"user","parts":[{"kind":"text","text":""}]}`, string(buf))
}

func TestWrapUnwrapRoundTrip(t *testing.T) {
	msg := Wrap("hello")

	// An echo agent replies with whatever it was sent.
	echo, err := json.Marshal(map[string]any{"jsonrpc": "2.0", "id": 1, "result": msg})
	assert.NoError(t, err)

	resp, err := jsonrpc.DecodeResponse(echo)
	assert.NoError(t, err)

	result := Unwrap(resp, nil)
	assert.True(t, result.Success)

	var got a2a.Message
	assert.NoError(t, json.Unmarshal(result.Payload.(json.RawMessage), &got))
	assert.Equal(t, *msg, got)
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name    string
		resp    *jsonrpc.Response
		err     error
		success bool
		payload any
		kind    Kind
		message string
	}{
		{
			name:    "result object",
			resp:    &jsonrpc.Response{Result: json.RawMessage(`{"text":"hi back"}`)},
			success: true,
			payload: json.RawMessage(`{"text":"hi back"}`),
		},
		{
			name:    "missing result",
			resp:    &jsonrpc.Response{},
			success: true,
			payload: json.RawMessage(`{}`),
		},
		{
			name:    "null result",
			resp:    &jsonrpc.Response{Result: json.RawMessage(`null`)},
			success: true,
			payload: json.RawMessage(`{}`),
		},
		{
			name:    "json-rpc error",
			resp:    &jsonrpc.Response{Error: rpcerrors.ErrMethodNotFound},
			kind:    KindRemoteFailure,
			message: "RPC error -32601: Method not found",
		},
		{
			name:    "status error",
			err:     &a2a.StatusError{StatusCode: 503},
			kind:    KindRemoteFailure,
			message: "A2A call failed: 503",
		},
		{
			name:    "connection error",
			err:     &a2a.ConnectionError{URL: "http://a.test/api/a2a", Err: errors.New("connection refused")},
			kind:    KindRemoteFailure,
			message: "failed to connect to http://a.test/api/a2a: connection refused",
		},
		{
			name:    "timeout",
			err:     &a2a.TimeoutError{URL: "http://a.test/api/a2a", Timeout: 30 * time.Second},
			kind:    KindTimeout,
			message: "request to http://a.test/api/a2a timed out after 30s",
		},
		{
			name:    "nothing at all",
			kind:    KindRemoteFailure,
			message: "empty response from agent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Unwrap(tt.resp, tt.err)

			assert.Equal(t, tt.success, result.Success)
			assert.Equal(t, tt.payload, result.Payload)
			assert.Equal(t, tt.kind, result.Kind)
			assert.Equal(t, tt.message, result.Error)
		})
	}
}

func TestEnvelopeInvariant(t *testing.T) {
	success := Succeed(nil)
	assert.True(t, success.Success)
	assert.NotNil(t, success.Payload)
	assert.Empty(t, success.Error)

	failure := Fail("", "")
	assert.False(t, failure.Success)
	assert.Nil(t, failure.Payload)
	assert.Equal(t, "unknown error", failure.Error)
	assert.Equal(t, KindInternal, failure.Kind)

	buf, err := json.Marshal(Fail(KindUnknownTool, "unknown tool: %s", "nope"))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"unknown tool: nope","kind":"unknown_tool"}`, string(buf))
}
