package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("operation not permitted")

// ErrRateProviderUnavailable indicates the exchange-rate provider could not be
// reached after exhausting the retry budget and no cached snapshot exists to
// fall back on.
var ErrRateProviderUnavailable = errors.New("exchange rate provider unavailable")

// ErrRateUnavailable indicates a specific currency is missing from an
// otherwise valid rate snapshot.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrReferenceNotFound indicates a supplied lookup-table value has no matching row.
var ErrReferenceNotFound = errors.New("referenced value not found")

// ErrOrphanedItem indicates an expense item has no owning report at deletion time.
var ErrOrphanedItem = errors.New("expense item has no owning report")

// ErrConcurrentModification indicates the report row changed between read and
// write; the caller should retry the whole item mutation.
var ErrConcurrentModification = errors.New("report was modified concurrently")
