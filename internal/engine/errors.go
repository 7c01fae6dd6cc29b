package engine

import "errors"

// ErrGateway signals the caller should surface a gateway-error response:
// the upstream was invalid or unreachable and no last-known-good snapshot
// exists to fall back to.
var ErrGateway = errors.New("engine: upstream unusable and no snapshot available")

// ErrInternal signals an unexpected internal fault (panic recovered, or a
// downstream failure with no snapshot to fall back to) that should
// surface as a server error.
var ErrInternal = errors.New("engine: internal fault and no snapshot available")
