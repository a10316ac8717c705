package selection

import "errors"

// ErrInvalidSelection indicates an operation was attempted against a
// selection variant or point configuration it does not support (e.g.
// character-granularity Modify against a NodeSelection).
var ErrInvalidSelection = errors.New("selection: invalid selection")
