// Package notify publishes transactional email requests to the mailer queue.
package notify

// EmailType tags the kind of transactional email.
type EmailType string

const (
	// EmailTypeAdminInvitation is sent when an admin is invited.
	EmailTypeAdminInvitation EmailType = "adminInvitationEmail"
	// EmailTypeRegistration is sent on user registration.
	EmailTypeRegistration EmailType = "registrationEmail"
	// EmailTypeConfirmation is sent on registration confirmation.
	EmailTypeConfirmation EmailType = "confirmationEmail"
)

// EmailMessage is one email payload; the queue body is a JSON array of
// these so the consumer can batch related sends.
type EmailMessage struct {
	To         []string  `json:"to"`
	CC         []string  `json:"cc,omitempty"`
	BCC        []string  `json:"bcc,omitempty"`
	Subject    string    `json:"subject"`
	Salutation string    `json:"salutation"`
	Body       []string  `json:"body"`
	Regards    []string  `json:"regards"`
	EmailType  EmailType `json:"emailType,omitempty"`
	EventID    string    `json:"eventId,omitempty"`
}
