package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

// SendBillingCodeEmail emails a deferred-payment code to the patient so they
// can settle at any cashier desk before the code expires.
func SendBillingCodeEmail(email, code string, expiresAt time.Time) error {
	// Retrieve the "From" header from an environment variable
	fromEmail := os.Getenv("SMTP_USER")

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your Payment Code")

	expiry := expiresAt.Format("Monday, 2 January 2006 15:04")

	// Set the plain text body
	m.SetBody("text/plain", fmt.Sprintf("Your payment code is: %s. Present it at any cashier desk before %s.", code, expiry))

	// Set the HTML body
	htmlBody := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Your Payment Code</title>
		<style>
			body {
				font-family: Arial, sans-serif;
				background-color: #f4f4f4;
				margin: 0;
				padding: 0;
			}
			.container {
				background-color: #ffffff;
				margin: 20px auto;
				padding: 20px;
				border-radius: 8px;
				box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);
				max-width: 600px;
			}
			h1 {
				color: #333333;
			}
			p {
				color: #666666;
			}
			.code {
				font-weight: bold;
				font-size: 24px;
				letter-spacing: 4px;
				color: #007bff;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Your Payment Code</h1>
			<p>Present this code at any cashier desk to settle your bill:</p>
			<p class="code">` + code + `</p>
			<p>The code is valid until ` + expiry + ` and can be used once.</p>
		</div>
	</body>
	</html>
	`
	m.AddAlternative("text/html", htmlBody)

	// Retrieve SMTP configuration from environment variables
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	// Convert the SMTP port from string to integer
	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		log.Printf("Invalid SMTP_PORT value: %v", err)
		return fmt.Errorf("invalid SMTP_PORT value: %w", err)
	}

	// Create the dialer with the retrieved configuration
	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	return d.DialAndSend(m)
}
