package mailer

import "embed"

const (
	FromName   = "Squeedr"
	maxRetries = 3

	UserWelcomeTemplate   = "user_invitation.tmpl"
	WaitlistOfferTemplate = "waitlist_offer.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
