package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"learnhub/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LearnHub <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outgoing mails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1a237e; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1a237e; line-height: 1.6; }
			.content h2 { color: #1a237e; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #d7b56d; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				%s
			</div>
			<div class="footer">
				This is an automated message from LearnHub. Please do not reply.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendPurchaseConfirmationEmail notifies a student that their course
// purchase was confirmed and the course is unlocked.
func SendPurchaseConfirmationEmail(to, name, courseName string) error {
	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Your purchase of <strong>%s</strong> is confirmed. The first lecture is unlocked and waiting for you.</p>
		<a class="btn" href="%s/my-courses">Start Learning</a>`,
		name, courseName, config.AppConfig.FrontendURL)
	return SendEmail([]string{to}, "Purchase confirmed: "+courseName, getEmailTemplate("Purchase Confirmed", body))
}

// SendCertificateIssuedEmail notifies a student that their course
// certificate is ready, with the public verification link.
func SendCertificateIssuedEmail(to, name, courseName, certificateNumber string) error {
	verifyURL := fmt.Sprintf("%s/verify-certificate/%s", config.AppConfig.FrontendURL, certificateNumber)
	body := fmt.Sprintf(`
		<h2>Congratulations %s!</h2>
		<p>You have completed <strong>%s</strong> and passed the final quiz.</p>
		<div class="info-box">Certificate number: <strong>%s</strong></div>
		<a class="btn" href="%s">View Certificate</a>`,
		name, courseName, certificateNumber, verifyURL)
	return SendEmail([]string{to}, "Your certificate for "+courseName, getEmailTemplate("Certificate Issued", body))
}
