// Package rest implements the api.API facade on top of the Patchwork REST
// API. List endpoints are consumed through a lazy page iterator driven by
// RFC 5988 Link headers; nested response objects are flattened into the
// canonical record shapes before they cross the package boundary.
package rest
