package sauce

import "github.com/textmode-tools/gosauce/internal/sauceerr"

// The public error taxonomy. Callers pattern-match against these with
// errors.Is; ErrNoSauce and ErrNoComments are expected, ordinary
// conditions, while ErrInvalidSauce and ErrInvalidLength signal
// malformed input. I/O failures from the file-backed operations are
// wrapped opaquely with fmt.Errorf("%w", ...) around the underlying
// *os.PathError or similar, never as one of these four.
var (
	ErrNoSauce      = sauceerr.ErrNoSauce
	ErrNoComments   = sauceerr.ErrNoComments
	ErrInvalidSauce = sauceerr.ErrInvalidSauce
	ErrInvalidLength = sauceerr.ErrInvalidLength
)
