package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

func smtpConfigured() bool {
	return os.Getenv("SMTP_HOST") != "" && os.Getenv("SMTP_FROM") != ""
}

func sendMail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("SMTP_FROM")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s\r\n",
		from, to, subject, body))

	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return smtp.SendMail(host+":"+port, auth, from, []string{to}, msg)
}

// SendVerificationEmail delivers the 6-digit signup code. Without SMTP
// configured the code is logged so local setups keep working.
func SendVerificationEmail(to, code string) {
	if !smtpConfigured() {
		log.Printf("[mail] SMTP not configured, verification code for %s: %s", to, code)
		return
	}

	body := fmt.Sprintf("Your MovieChamp verification code is %s.\n\nThe code expires in 15 minutes.", code)
	if err := sendMail(to, "Verify your MovieChamp account", body); err != nil {
		log.Printf("[mail] Failed to send verification email to %s: %v", to, err)
	}
}

// SendPasswordResetEmail delivers the reset link built from APP_BASE_URL.
func SendPasswordResetEmail(to, token string) {
	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	link := fmt.Sprintf("%s/reset-password?token=%s", baseURL, token)

	if !smtpConfigured() {
		log.Printf("[mail] SMTP not configured, reset link for %s: %s", to, link)
		return
	}

	body := fmt.Sprintf("A password reset was requested for your account.\n\nReset it here: %s\n\nThe link expires in 30 minutes. If you did not request this, ignore this email.", link)
	if err := sendMail(to, "Reset your MovieChamp password", body); err != nil {
		log.Printf("[mail] Failed to send reset email to %s: %v", to, err)
	}
}
