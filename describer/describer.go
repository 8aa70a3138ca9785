package describer

import (
	"context"
	"errors"
)

// Failure modes of the remote naming service. All are per-image failures;
// callers skip the image and move on.
var (
	// ErrAuthentication means the service rejected the credential.
	ErrAuthentication = errors.New("naming service rejected the credential")

	// ErrRateLimited means the service signalled quota exhaustion. No retry
	// is performed, the caller surfaces the failure and continues.
	ErrRateLimited = errors.New("naming service rate limit reached")

	// ErrMalformedResponse means the response carried no usable text.
	ErrMalformedResponse = errors.New("naming service response had no usable text")
)

// Image is one image loaded from disk and ready to send to a model.
type Image struct {
	Data []byte
	MIME string
}

// Describer names an image using a specific LLM.
type Describer interface {
	// Name returns the name of the backing LLM, e.g. "llama" or "openai"
	Name() string

	// DescribeImage returns a short descriptive phrase for the provided
	// image, suitable as the base of a filename. The provided ctx is used as
	// a parent context for the request to the LLM server.
	DescribeImage(ctx context.Context, img Image) (string, error)

	// IsHealthy returns whether the LLM server is healthy.
	IsHealthy() bool
}
