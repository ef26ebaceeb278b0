// Package email provides a provider-agnostic interface for sending
// transactional emails with built-in support for Postmark.
//
// The package is built around the EmailSender interface so providers can
// be swapped without changing application code:
//   - the Postmark client for production delivery with open/click tracking
//   - DevSender for local development (saves emails to disk)
//
// Every message carries both an HTML and a plain-text body. All
// implementations validate parameters before sending and return sentinel
// errors (ErrInvalidConfig, ErrInvalidParams, ErrFailedToSendEmail) that
// callers can match with errors.Is.
package email
