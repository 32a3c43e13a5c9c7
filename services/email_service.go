// File: /services/email_service.go
package services

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"alumninet-api/config"
)

// EmailService sends transactional notifications over SMTP. All sends are
// best-effort; callers fire them in goroutines and never fail an operation
// on an email error.
type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

func (es *EmailService) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	fmt.Printf("Email sent to %s: %s\n", to, subject)
	return nil
}

// SendVerificationApproved notifies an alumni that an admin verified their account.
func (es *EmailService) SendVerificationApproved(email, name string) error {
	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2>Congratulations, %s!</h2>
	<p>Your alumni account has been <strong>verified and approved</strong> by our admin team.</p>
	<p>You now have full access to:</p>
	<ul>
		<li>Post job and internship opportunities for students</li>
		<li>Connect with current students and fellow alumni</li>
		<li>Review applications and help students grow</li>
	</ul>
	<p>Login to your account and start making an impact!</p>
	<p>Best regards,<br><strong>The %s Team</strong></p>
</div>`, name, es.config.FromName)

	return es.send(email, "Your Alumni Account is Now Verified", htmlBody)
}

// SendVerificationRevoked notifies an alumni that their verification was revoked.
func (es *EmailService) SendVerificationRevoked(email, name string) error {
	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2>Account Access Update</h2>
	<p>Dear <strong>%s</strong>,</p>
	<p>Your alumni account verification has been <strong>temporarily revoked</strong>.</p>
	<p>You can still login, but alumni features are limited until your account is re-verified.
	If you believe this was done in error, please contact our admin team.</p>
	<p>Best regards,<br><strong>The %s Team</strong></p>
</div>`, name, es.config.FromName)

	return es.send(email, "Your Alumni Account Access Update", htmlBody)
}

// SendOpportunityPosted confirms to the posting alumni that their opportunity is live.
func (es *EmailService) SendOpportunityPosted(email, name, title, companyName string) error {
	htmlBody := fmt.Sprintf(`
<p>Hi %s,</p>
<p>Your opportunity <b>%s</b> has been posted successfully for company <b>%s</b>.</p>`,
		name, title, companyName)

	return es.send(email, "Your Opportunity has been Posted", htmlBody)
}

// SendNewOpportunityNotice tells a student about a freshly posted opportunity.
func (es *EmailService) SendNewOpportunityNotice(email, studentName, title, companyName, description, opportunityType, alumniName string) error {
	htmlBody := fmt.Sprintf(`
<p>Hi %s,</p>
<p>A new opportunity <b>%s</b> has been posted by %s.</p>
<p><b>Company:</b> %s</p>
<p><b>Description:</b> %s</p>
<p><b>Type:</b> %s</p>
<p>Login to the Alumni Network to know more and apply.</p>`,
		studentName, title, alumniName, companyName, description, opportunityType)

	return es.send(email, fmt.Sprintf("New Opportunity: %s at %s", title, companyName), htmlBody)
}

// SendApplicationSubmitted confirms an application to the student.
func (es *EmailService) SendApplicationSubmitted(email, name, title string) error {
	htmlBody := fmt.Sprintf(`
<p>Hi %s,</p>
<p>Your application for <b>%s</b> has been submitted successfully.</p>`, name, title)

	return es.send(email, fmt.Sprintf("Application Submitted: %s", title), htmlBody)
}

// SendNewApplicationNotice tells the posting alumni a student applied.
func (es *EmailService) SendNewApplicationNotice(email, name, title string) error {
	htmlBody := fmt.Sprintf(`
<p>Hi %s,</p>
<p>A new student has applied to your opportunity <b>%s</b>.</p>`, name, title)

	return es.send(email, fmt.Sprintf("New Application for %s", title), htmlBody)
}

// SendApplicationDecision tells a student their application was accepted or rejected.
func (es *EmailService) SendApplicationDecision(email, name, title, status string) error {
	verdict := "Rejected"
	if status == "accepted" {
		verdict = "Accepted"
	}

	htmlBody := fmt.Sprintf(`
<p>Hi %s,</p>
<p>Your application for <b>%s</b> has been <b>%s</b>.</p>`, name, title, status)

	return es.send(email, fmt.Sprintf("Application %s: %s", verdict, title), htmlBody)
}

// SendAcceptedStudentNotice sends the alumni's custom follow-up to an accepted student.
func (es *EmailService) SendAcceptedStudentNotice(email, studentName, title, alumniName, content string) error {
	htmlBody := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>Congratulations!</h2>
	<p>Dear <strong>%s</strong>,</p>
	<p>Congratulations on being accepted for <strong>%s</strong>!</p>
	<div style="background: #f8f9fa; padding: 15px; border-radius: 8px; margin: 20px 0;">%s</div>
	<p>If you have any questions, please don't hesitate to reach out.</p>
	<p>Best regards,<br><strong>%s</strong></p>
</div>`, studentName, title, strings.ReplaceAll(content, "\n", "<br>"), alumniName)

	return es.send(email, fmt.Sprintf("Next Steps for %s", title), htmlBody)
}
