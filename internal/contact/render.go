package contact

import (
	"fmt"
	"html"
	"strings"
)

// Email is the rendered notification for one submission.
type Email struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// BuildEmail renders the notification sent to the site owner. The visitor's
// address becomes the reply-to so a reply goes straight back to them. User
// input is HTML-escaped before newlines in the message become <br>.
func BuildEmail(s Submission) Email {
	s.Normalize()
	return Email{
		From:    Sender,
		To:      []string{Recipient},
		ReplyTo: s.Email,
		Subject: SubjectStart + singleLine(s.Name),
		HTML:    renderHTML(s),
		Text:    renderText(s),
	}
}

// MessageHTML escapes msg and turns each newline into a <br>.
func MessageHTML(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	return strings.ReplaceAll(html.EscapeString(msg), "\n", "<br>")
}

func singleLine(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

const htmlTemplate = `<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #0066FF; border-bottom: 2px solid #0066FF; padding-bottom: 12px; margin-bottom: 24px;">
        New Contact Form Submission
    </h2>
    <table style="width: 100%%; border-collapse: collapse; margin-bottom: 24px;">
        <tr style="border-bottom: 1px solid #E0E0E0;">
            <td style="padding: 12px 0; font-weight: 600; width: 120px; color: #666;">Name</td>
            <td style="padding: 12px 0; color: #0A0A0A;">%s</td>
        </tr>
        <tr style="border-bottom: 1px solid #E0E0E0;">
            <td style="padding: 12px 0; font-weight: 600; color: #666;">Email</td>
            <td style="padding: 12px 0;"><a href="mailto:%s" style="color: #0066FF; text-decoration: none;">%s</a></td>
        </tr>
        <tr style="border-bottom: 1px solid #E0E0E0;">
            <td style="padding: 12px 0; font-weight: 600; color: #666;">Company</td>
            <td style="padding: 12px 0; color: #0A0A0A;">%s</td>
        </tr>
        <tr style="border-bottom: 1px solid #E0E0E0;">
            <td style="padding: 12px 0; font-weight: 600; color: #666;">Position</td>
            <td style="padding: 12px 0; color: #0A0A0A;">%s</td>
        </tr>
    </table>
    <div style="margin-top: 24px;">
        <p style="font-weight: 600; color: #666; margin-bottom: 12px;">Message:</p>
        <div style="background: #F5F5F5; padding: 16px; border-radius: 8px; border-left: 4px solid #0066FF; color: #0A0A0A; line-height: 1.6;">
            %s
        </div>
    </div>
    <p style="margin-top: 32px; color: #999; font-size: 14px; text-align: center;">
        Sent from Linear Marketing Solutions website
    </p>
</div>`

func renderHTML(s Submission) string {
	email := html.EscapeString(s.Email)
	return fmt.Sprintf(htmlTemplate,
		html.EscapeString(s.Name),
		email,
		email,
		html.EscapeString(s.Company),
		html.EscapeString(s.Position),
		MessageHTML(s.Message),
	)
}

func renderText(s Submission) string {
	return fmt.Sprintf("New Contact Form Submission\n\nName: %s\nEmail: %s\nCompany: %s\nPosition: %s\n\nMessage:\n%s\n\nSent from Linear Marketing Solutions website\n",
		s.Name, s.Email, s.Company, s.Position, s.Message)
}
