// Package xmlrpc implements the api.API facade on top of the legacy
// Patchwork XML-RPC service. It owns the filter resolution the old
// protocol requires: state names resolve by prefix match, project
// linknames by exact match, and submitter/delegate substrings fan out
// into one list call per matching person. Fields the server transmits as
// binary blobs are decoded as UTF-8 during normalization.
package xmlrpc
