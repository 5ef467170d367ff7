// Package appwrite implements the REST client for the hosted backend that
// stores reelgrid's data: documents (databases service), thumbnails
// (storage service), and the admin session (account service).
//
// The client is deliberately small. It covers only the endpoints reelgrid
// calls, speaks JSON over HTTP with the project header attached to every
// request, and classifies failures into four error kinds the UI layer
// distinguishes for messaging:
//
//   - ErrUnauthorized: the session or key lacks permission
//   - ErrBadRequest: schema validation rejected the payload
//   - ErrNotFound: document or file is gone
//   - ErrConflict: a concurrent write interfered
//
// Callers test kinds with errors.Is; everything else is an opaque transport
// failure. Document records are returned raw (Document is a map) because
// attribute names vary across the portfolio's collections; normalization
// into the canonical item shape happens in the reel package, never here.
package appwrite
