package notify

import "context"

// AdminInvitation builds the email sent to a newly invited admin.
func AdminInvitation(email, temporaryPassword, frontendURL string) EmailMessage {
	return EmailMessage{
		To:         []string{email},
		Subject:    "TechTix Admin Invitation",
		Salutation: "Good day,",
		Body: []string{
			"You are invited to be an Admin of TechTix. Below are your temporary credentials:",
			"Link: " + frontendURL + "/admin/login",
			"Email: " + email,
			"Temporary Password: " + temporaryPassword,
			"Please change your password after logging in.",
			"Thank you!",
		},
		Regards:   []string{"Best,"},
		EmailType: EmailTypeAdminInvitation,
		EventID:   email,
	}
}

// SendAdminInvitation formats and enqueues the invitation email.
func SendAdminInvitation(ctx context.Context, n Notifier, email, temporaryPassword, frontendURL string) error {
	return n.Enqueue(ctx, AdminInvitation(email, temporaryPassword, frontendURL))
}
