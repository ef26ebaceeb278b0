// Package newsletter implements publishing an issue to every confirmed
// subscriber behind HTTP Basic authentication. Credential checks run
// through the constant-time validator inside the request's transaction;
// rows with invalid stored emails are skipped with a warning instead of
// failing the whole send.
package newsletter
