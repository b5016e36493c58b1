/*
Package errors implements custom error interfaces for the repository.

The idea is to reuse as many errors from this package as possible and
define custom package errors only when an error category is specific to
a single extension (see x/escrow and x/token for examples). Errors are
matched by their registered root cause, not by string comparison, so
wrapping never breaks error tests.
*/
package errors
