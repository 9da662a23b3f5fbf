package ops

import (
	"github.com/lettered/verifyapi/types"
)

// ErrExternal indicates that a request to an upstream service failed.
//
// Downstream integration failures wrapped in it are logged and swallowed by
// the agent; the submission still succeeds from the caller's point of view.
const ErrExternal = types.SentinelError("external error")
