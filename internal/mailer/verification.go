package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

var verificationTmpl = template.Must(template.New("verify").Parse(`<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2>Verify your email</h2>
  <p>Hi {{.Username}}, thanks for signing up. Click the button below to verify your email address:</p>
  <p>
    <a href="{{.URL}}" style="display: inline-block; padding: 10px 20px; background-color: #1890ff; color: white; text-decoration: none; border-radius: 4px;">Verify email</a>
  </p>
  <p>If you did not create an account, you can ignore this email.</p>
  <p>This link expires in 24 hours.</p>
  <p>If the button does not work, copy this link into your browser:</p>
  <p>{{.URL}}</p>
</div>
`))

type VerificationMailer struct {
	sender    Sender
	clientURL string
}

func NewVerificationMailer(sender Sender, clientURL string) *VerificationMailer {
	return &VerificationMailer{sender: sender, clientURL: strings.TrimRight(clientURL, "/")}
}

func (m *VerificationMailer) SendVerification(ctx context.Context, to, username, token string) error {
	body, err := m.render(username, token)
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, Message{
		To:      to,
		Subject: "Verify your email",
		HTML:    body,
	})
}

func (m *VerificationMailer) VerificationURL(token string) string {
	return m.clientURL + "/verify-email?token=" + url.QueryEscape(token)
}

func (m *VerificationMailer) render(username, token string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Username string
		URL      string
	}{Username: username, URL: m.VerificationURL(token)}

	if err := verificationTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render verification mail: %w", err)
	}
	return buf.String(), nil
}
