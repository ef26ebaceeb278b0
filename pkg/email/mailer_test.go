package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/letterdrop/pkg/email"
)

func TestSendEmailParamsValidate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Welcome!",
		BodyHTML: "<p>hi</p>",
		BodyText: "hi",
	}

	t.Run("valid params", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid.Validate())
	})

	t.Run("text-only body is enough", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.BodyHTML = ""
		assert.NoError(t, p.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*email.SendEmailParams)
	}{
		{"missing recipient", func(p *email.SendEmailParams) { p.SendTo = "" }},
		{"invalid recipient", func(p *email.SendEmailParams) { p.SendTo = "not-an-email" }},
		{"missing subject", func(p *email.SendEmailParams) { p.Subject = "" }},
		{"no body at all", func(p *email.SendEmailParams) { p.BodyHTML, p.BodyText = "", "" }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := valid
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
		})
	}
}

func TestNewPostmarkClientConfigValidation(t *testing.T) {
	t.Parallel()

	base := email.Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "noreply@example.com",
		SupportEmail:         "support@example.com",
	}

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		_, err := email.NewPostmarkClient(base)
		assert.NoError(t, err)
	})

	tests := []struct {
		name   string
		mutate func(*email.Config)
	}{
		{"missing server token", func(c *email.Config) { c.PostmarkServerToken = "" }},
		{"missing account token", func(c *email.Config) { c.PostmarkAccountToken = "" }},
		{"missing sender", func(c *email.Config) { c.SenderEmail = "" }},
		{"invalid sender", func(c *email.Config) { c.SenderEmail = "nope" }},
		{"missing support", func(c *email.Config) { c.SupportEmail = "" }},
		{"invalid support", func(c *email.Config) { c.SupportEmail = "nope" }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			tt.mutate(&cfg)
			_, err := email.NewPostmarkClient(cfg)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
		})
	}
}

func TestDevSender(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sender := email.NewDevSender(dir)

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Welcome!",
		BodyHTML: "<p>hello</p>",
		BodyText: "hello",
		Tag:      "subscription-confirmation",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var htmlFile, textFile, jsonFile string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".html":
			htmlFile = e.Name()
		case ".txt":
			textFile = e.Name()
		case ".json":
			jsonFile = e.Name()
		}
	}
	require.NotEmpty(t, htmlFile)
	require.NotEmpty(t, textFile)
	require.NotEmpty(t, jsonFile)
	assert.True(t, strings.Contains(htmlFile, "subscription-confirmation"))

	blob, err := os.ReadFile(filepath.Join(dir, jsonFile))
	require.NoError(t, err)
	var meta struct {
		SendTo  string `json:"send_to"`
		Subject string `json:"subject"`
	}
	require.NoError(t, json.Unmarshal(blob, &meta))
	assert.Equal(t, "user@example.com", meta.SendTo)
	assert.Equal(t, "Welcome!", meta.Subject)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("dev provider", func(t *testing.T) {
		t.Parallel()
		sender, err := email.NewFromConfig(email.Config{
			Provider:     "dev",
			SenderEmail:  "noreply@example.com",
			SupportEmail: "support@example.com",
			DevOutputDir: t.TempDir(),
		})
		require.NoError(t, err)
		assert.IsType(t, &email.DevSender{}, sender)
	})

	t.Run("postmark requires tokens", func(t *testing.T) {
		t.Parallel()
		_, err := email.NewFromConfig(email.Config{
			Provider:     "postmark",
			SenderEmail:  "noreply@example.com",
			SupportEmail: "support@example.com",
		})
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	})
}
