package jsonrpc

import (
	"bytes"
	"encoding/json"

	"github.com/theapemachine/a2a-bridge/pkg/errors"
)

/*
Response is an inbound JSON-RPC 2.0 reply. Result is kept raw so the caller
decides how to interpret it.
*/
type Response struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      any              `json:"id,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *errors.RpcError `json:"error,omitempty"`
}

/*
DecodeResponse parses a response body. It only fails on malformed JSON or a
body that is not a JSON object; a missing result is not an error.
*/
func DecodeResponse(data []byte) (*Response, error) {
	var response Response

	if err := json.Unmarshal(data, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

/*
HasResult reports whether the response carries a non-null result member.
*/
func (response *Response) HasResult() bool {
	trimmed := bytes.TrimSpace(response.Result)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
