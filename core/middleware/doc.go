// Package middleware groups the Fiber middleware used by the HTTP server.
//
// # Subpackages
//
//   - rayid: assigns a unique ray_id to every request for log correlation.
//   - auth: guards the API with a shared API key.
//
// Middleware order matters: rayid must run first so that every subsequent
// log line, including auth rejections, carries the ray_id.
package middleware
