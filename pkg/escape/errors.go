package escape

import "errors"

// ErrInvalidParameter is wrapped by every validation failure in Generate.
var ErrInvalidParameter = errors.New("invalid parameter")
