package models

// SendMailRequest is the Brevo transactional email payload.
type SendMailRequest struct {
	Source       MailSource        `json:"sender"`
	Destinations []MailDestination `json:"to"`
	Subject      string            `json:"subject"`
	Body         string            `json:"htmlContent"`
}

type MailSource struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type MailDestination struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}
