package transport

import "errors"

var (
	// ErrUnreachable indicates the request could not be completed at the
	// network layer. The gateway has already told the user.
	ErrUnreachable = errors.New("marketplace server unreachable")

	// ErrEncode indicates the payload could not be serialised to JSON.
	ErrEncode = errors.New("encoding request payload")

	// ErrDecode indicates a GetJSON body did not match the expected shape.
	ErrDecode = errors.New("decoding response body")
)
