// Package errs provides standardized error types for the order fulfillment core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is malformed
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//   - ObjectNotFoundError: For when an order, provider or vehicle cannot be found
//   - ForbiddenError: For when the authorization policy denies an action
//   - ConflictError: For lost races and transitions attempted from the wrong state
//   - UnauthorizedError: For requests without a verifiable identity
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
//
// The inbound HTTP adapter classifies errors only through these sentinels.
package errs
