package tokencount

import "errors"

// Sentinel errors for counter construction and remote counting.
// Callers should use errors.Is to check.
var (
	// ErrUnknownEncoding indicates the name is neither a known model nor a known encoding.
	ErrUnknownEncoding = errors.New("tokencount: unknown model or encoding")
	// ErrCountFailed indicates a remote token-counting call failed.
	ErrCountFailed = errors.New("tokencount: count failed")
	// ErrEncodeFailed indicates the local tokenizer could not encode the text.
	ErrEncodeFailed = errors.New("tokencount: encode failed")
)
