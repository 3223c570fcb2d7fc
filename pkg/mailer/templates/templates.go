package templates

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
)

// Template names understood by the email worker.
const (
	VerifyEmail   = "verify_email"
	ResetPassword = "reset_password"
)

type def struct {
	subject string
	text    string
	html    string
}

var defs = map[string]def{
	VerifyEmail: {
		subject: "Verify your email address",
		text: "Hello {{.Name}},\n\n" +
			"Please confirm your email address by opening the link below:\n" +
			"{{.VerifyURL}}\n\n" +
			"If you did not create an account, you can ignore this email.\n",
		html: `<p>Hello {{.Name}},</p>
<p>Please confirm your email address by clicking the link below:</p>
<p><a href="{{.VerifyURL}}">Verify email</a></p>
<p>If you did not create an account, you can ignore this email.</p>`,
	},
	ResetPassword: {
		subject: "Reset your password",
		text: "Hello {{.Name}},\n\n" +
			"A password reset was requested for your account. Open the link below to set a new password:\n" +
			"{{.ResetURL}}\n\n" +
			"The link expires in {{.ExpiresIn}}. If you did not request a reset, you can ignore this email.\n",
		html: `<p>Hello {{.Name}},</p>
<p>A password reset was requested for your account. Click the link below to set a new password:</p>
<p><a href="{{.ResetURL}}">Reset password</a></p>
<p>The link expires in {{.ExpiresIn}}. If you did not request a reset, you can ignore this email.</p>`,
	},
}

// Render produces subject, text and html bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	d, ok := defs[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}

	tt, err := texttpl.New(name).Parse(d.text)
	if err != nil {
		return "", "", "", err
	}
	var tb bytes.Buffer
	if err := tt.Execute(&tb, data); err != nil {
		return "", "", "", err
	}

	ht, err := htmltpl.New(name).Parse(d.html)
	if err != nil {
		return "", "", "", err
	}
	var hb bytes.Buffer
	if err := ht.Execute(&hb, data); err != nil {
		return "", "", "", err
	}

	return d.subject, tb.String(), hb.String(), nil
}
