package wire

// ResultKind is the outcome a resource handler reports to the
// interaction layer. It is a closed set; the adapter maps each kind to
// a Status with ResultKind.Status instead of relying on integer sign
// conventions.
type ResultKind uint8

const (
	// ResultCompleted indicates the handler finished synchronously.
	ResultCompleted ResultKind = iota

	// ResultAsync indicates the result will be produced later; the
	// protocol engine polls for it.
	ResultAsync

	// ResultGeneralError indicates an unspecified handler failure.
	ResultGeneralError

	// ResultIncorrectRange indicates a written value was out of range.
	ResultIncorrectRange

	// ResultNotImplemented indicates the behavior is not implemented.
	ResultNotImplemented

	// ResultNotSupported indicates the operation is not supported on
	// this resource.
	ResultNotSupported

	// ResultInvalidArgument indicates a malformed payload or target.
	ResultInvalidArgument

	// ResultInvalidState indicates the handler cannot run right now.
	ResultInvalidState

	// ResultOverflow indicates the scratch buffer was too small.
	ResultOverflow
)

// String returns the result kind name.
func (k ResultKind) String() string {
	switch k {
	case ResultCompleted:
		return "COMPLETED"
	case ResultAsync:
		return "ASYNC"
	case ResultGeneralError:
		return "GENERAL_ERROR"
	case ResultIncorrectRange:
		return "INCORRECT_RANGE"
	case ResultNotImplemented:
		return "NOT_IMPLEMENTED"
	case ResultNotSupported:
		return "NOT_SUPPORTED"
	case ResultInvalidArgument:
		return "INVALID_ARGUMENT"
	case ResultInvalidState:
		return "INVALID_STATE"
	case ResultOverflow:
		return "OVERFLOW"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the kind does not represent a failure.
func (k ResultKind) IsSuccess() bool {
	return k == ResultCompleted || k == ResultAsync
}

// Status maps the result kind to the protocol status code for the
// operation that produced it. Unrecognized kinds map to an internal
// server error so a handler bug never turns into a silent success.
func (k ResultKind) Status(op Operation) Status {
	switch k {
	case ResultCompleted, ResultAsync:
		// An async handler accepted the call; the engine polls for the
		// actual result later.
		switch op {
		case OpRead, OpDiscover, OpObserve:
			return StatusContent
		case OpWrite, OpExecute, OpWriteAttributes:
			return StatusChanged
		default:
			return StatusBadRequest
		}
	case ResultInvalidState:
		return StatusServiceUnavailable
	case ResultInvalidArgument:
		return StatusBadRequest
	case ResultNotSupported:
		return StatusNotFound
	case ResultNotImplemented:
		return StatusNotImplemented
	case ResultIncorrectRange, ResultGeneralError, ResultOverflow:
		return StatusInternalServerError
	default:
		return StatusInternalServerError
	}
}
