// Package intercept memoizes calls to designated operations by identity.
//
// A Registry keeps one cache per OperationID. Within an operation the cache is
// keyed by a fingerprint of the call's argument list, so two operations called
// with identical arguments never share an entry. The registry is an explicit
// value: create it once and hand it to whatever layer routes calls through it
// (the Decorate functions, or the memo effect in effects/memo).
//
// Fingerprints are lossy. Two different argument lists that hash to the same
// fingerprint share an entry; with 64-bit tokens this is accepted.
package intercept
