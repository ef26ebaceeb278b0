// Package httperr is the failure side channel of the request pipeline.
//
// Handlers and middleware attach a typed failure descriptor (validation,
// unauthorized, or internal) to the in-flight response via the context-bound
// recorder; outer layers read only the kind, never the concrete producing
// type. Classification is two-tier: an attached descriptor wins, otherwise a
// 5xx status code is treated as an internal failure with a synthesized
// "error not recorded" cause. The transaction coordinator derives its
// commit/rollback decision from the classified kind, and the middleware maps
// kinds to status codes: validation 422 with a plain-text message,
// unauthorized 401 with a WWW-Authenticate challenge, internal 500 with an
// opaque body.
package httperr
