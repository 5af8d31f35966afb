// Package server exposes the skill library as Model Context Protocol tools
// over stdio.
//
// Every tool decodes its arguments into a Go struct (whose JSON schema is
// advertised to clients), performs a single library, search or install call
// and answers with one JSON text block. Failures are reported inside that
// block as {"success": false, "error": "..."} so the calling agent can read
// them; the protocol-level error is reserved for malformed requests the
// server itself cannot decode.
//
// Stdout belongs to the protocol. Logging must go to stderr or a file.
package server
