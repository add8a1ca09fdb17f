// Package errors provides structured, coded errors for rpg-tables.
//
// Errors carry a Code, a user-facing message, an optional cause and
// metadata. Codes map onto gRPC status codes at the handler boundary.
//
// # Domain errors
//
// Domain packages declare plain sentinels and attach a code when returning
// them:
//
//	var ErrMalformedRange = stderrors.New("malformed range")
//
//	return errors.WrapWithCodef(ErrMalformedRange, errors.CodeInvalidArgument,
//	    "range %q has more than one separator", cell)
//
// Callers can then check either the sentinel or the code:
//
//	errors.Is(err, tables.ErrMalformedRange)
//	errors.IsInvalidArgument(err)
//
// # Layer guidelines
//
// Core packages (dice, tables) return InvalidArgument for bad input and
// NotFound when a lookup has no answer. Repositories return NotFound for
// missing keys and wrap redis failures. Orchestrators validate inputs and
// wrap lower-layer errors with context. Handlers convert with ToGRPCError.
package errors
