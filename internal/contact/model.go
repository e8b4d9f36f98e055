package contact

import "strings"

// Fixed delivery identity. None of these are taken from the request.
const (
	Recipient    = "info@linearmarketingsolutions.com"
	SenderName   = "Linear Marketing Solutions"
	SenderEmail  = "onboarding@resend.dev"
	Sender       = SenderName + " <" + SenderEmail + ">"
	SubjectStart = "New Contact Form Submission from "
)

// Visitor-facing response texts.
const (
	MsgMissingFields    = "Please fill in all required fields."
	MsgInvalidEmail     = "Please enter a valid email address."
	MsgMethodNotAllowed = "Method not allowed"
	MsgNotConfigured    = "Email service not configured."
	MsgSendFailed       = "Failed to send message. Please try again or email us directly."
	MsgUnexpected       = "An unexpected error occurred. Please try again later."
	MsgDelivered        = "Thank you for reaching out! We'll respond within 24 hours."
	MsgClientSuccess    = "Thank you! We'll be in touch within 24 hours."
	MsgClientFailure    = "Something went wrong. Please try again."
	MsgClientTransport  = "Unable to send message. Please email us directly at " + Recipient
)

// Submission is a single contact form payload. It lives for one request only.
type Submission struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Message  string `json:"message"`
}

// Normalize trims surrounding whitespace from every field.
func (s *Submission) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Company = strings.TrimSpace(s.Company)
	s.Position = strings.TrimSpace(s.Position)
	s.Message = strings.TrimSpace(s.Message)
}

// Response is the JSON body returned by the submission endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Succeeded builds a success response.
func Succeeded(msg string) Response {
	return Response{Success: true, Message: msg}
}

// Failed builds a failure response.
func Failed(msg string) Response {
	return Response{Success: false, Error: msg}
}
