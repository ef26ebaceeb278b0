// Package admin implements the operator-facing login flow and dashboard.
// Login failures set a signed flash cookie and redirect back to the form;
// successful logins rotate the session id before storing the user id.
package admin
