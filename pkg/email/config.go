package email

// Config holds email service configuration.
// Postmark tokens are optional to support development environments where
// outbound email is written to disk instead of sent.
type Config struct {
	Provider             string `env:"EMAIL_PROVIDER" envDefault:"postmark"`
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
	DevOutputDir         string `env:"EMAIL_DEV_OUTPUT_DIR" envDefault:"./tmp/emails"`
}

// NewFromConfig builds the sender selected by cfg.Provider. Anything
// other than "dev" gets the production Postmark client.
func NewFromConfig(cfg Config) (EmailSender, error) {
	if cfg.Provider == "dev" {
		return NewDevSender(cfg.DevOutputDir), nil
	}
	return NewPostmarkClient(cfg)
}
