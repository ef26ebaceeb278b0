package subscriptions

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/letterdrop/pkg/email"
)

func confirmationEmail(baseURL, sendTo string, token uuid.UUID) email.SendEmailParams {
	link := fmt.Sprintf("%s/subscriptions/confirm?token=%s", baseURL, token)

	return email.SendEmailParams{
		SendTo:  sendTo,
		Subject: "Welcome!",
		Tag:     "subscription-confirmation",
		BodyHTML: fmt.Sprintf(
			`Welcome to our newsletter!<br />Click <a href="%s">here</a> to confirm your subscription.`,
			link,
		),
		BodyText: fmt.Sprintf(
			"Welcome to our newsletter!\nVisit %s to confirm your subscription.",
			link,
		),
	}
}
