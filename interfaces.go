package ekdsend

import "context"

// Adapter performs a single HTTP attempt. It returns a RawResponse for every completed
// exchange, whatever the status, and a non-nil error only when no response was received.
// Implementations must be safe for concurrent use.
type Adapter interface {
	ExecuteRequest(ctx context.Context, req *NormalizedRequest) (*RawResponse, error)
}
