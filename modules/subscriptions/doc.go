// Package subscriptions implements the public signup flow: a form-driven
// subscribe endpoint that stores a pending subscription plus a confirmation
// token inside the request's transaction and emails a confirmation link,
// and a confirm endpoint that flips the subscription to confirmed.
package subscriptions
