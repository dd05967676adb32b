// Package api defines the backend-independent contract for talking to a
// Patchwork server: the canonical record types, the API facade interface
// that both wire backends implement, credential validation, and the error
// taxonomy callers can branch on.
//
// The two implementations live in the rest and xmlrpc subpackages. Which
// one is constructed is decided once, from configuration, before any
// network activity; callers only ever see this package's types.
package api
