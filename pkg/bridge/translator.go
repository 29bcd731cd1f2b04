package bridge

import (
	"errors"

	"github.com/theapemachine/a2a-bridge/pkg/a2a"
	"github.com/theapemachine/a2a-bridge/pkg/jsonrpc"
)

/*
Wrap turns a plain text message into the structured message sent to agents.
*/
func Wrap(text string) *a2a.Message {
	return a2a.NewTextMessage(a2a.RoleUser, text)
}

/*
Unwrap translates the outcome of a message/send call into a Result. The
remote result is passed through untouched; a missing result is an empty
object. Timeouts are reported separately from other failures.
*/
func Unwrap(resp *jsonrpc.Response, err error) Result {
	var timeout *a2a.TimeoutError

	switch {
	case errors.As(err, &timeout):
		return Fail(KindTimeout, "%s", err)
	case err != nil:
		return Fail(KindRemoteFailure, "%s", err)
	case resp == nil:
		return Fail(KindRemoteFailure, "empty response from agent")
	case resp.Error != nil:
		return Fail(KindRemoteFailure, "%s", resp.Error)
	case !resp.HasResult():
		return Succeed(nil)
	}

	return Succeed(resp.Result)
}
