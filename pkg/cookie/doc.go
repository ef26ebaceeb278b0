// Package cookie provides tamper-evident cookies signed with HMAC-SHA256.
// The session id cookie is the primary consumer: the value stays readable by
// the client but cannot be forged without a server-held secret. Secrets are
// rotatable; the newest signs, all verify.
package cookie
