/*
Package result contains result types returned by the node for contract
related requests.
*/
package result

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Call is the result of a read-only contract invocation.
type Call struct {
	// Data is the call data that was sent (selector and encoded arguments).
	Data hexutil.Bytes `json:"data"`
	// Raw is the data returned by the node.
	Raw hexutil.Bytes `json:"raw"`
	// Formatted is Raw decoded according to the method outputs. It's empty
	// when the call was performed without the method descriptor.
	Formatted []any `json:"formatted,omitempty"`
}
