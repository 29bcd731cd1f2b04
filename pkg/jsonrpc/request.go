package jsonrpc

// Version is the only JSON-RPC version spoken on the wire.
const Version = "2.0"

/*
Request is an outbound JSON-RPC 2.0 call. ID accepts string | number | null.
*/
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

/*
NewRequest builds a request for method. Each bridge call is a single
request/response exchange, so the id is fixed at 1.
*/
func NewRequest(method string, params any) Request {
	return Request{
		JSONRPC: Version,
		ID:      1,
		Method:  method,
		Params:  params,
	}
}
