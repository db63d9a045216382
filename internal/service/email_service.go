package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates a new email service. With no from address
// configured the service is disabled and every send becomes a logged no-op.
func NewEmailService(awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail sends a welcome email to a newly registered parent
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, parentName, childName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	subject := "Welcome to SingLang!"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #5a9fd2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Welcome to SingLang!</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>Thank you for creating an account for %s. We're excited to help your child learn sign language through short daily lessons and quizzes.</p>
			<p>Here's what you can do next:</p>
			<ul>
				<li>Set up a study plan with the days and pace that suit you</li>
				<li>Follow the weekly schedule of bite-sized lessons</li>
				<li>Track progress and keep the learning streak going</li>
			</ul>
		</div>
		<div class="footer">
			<p>This is an automated email from SingLang. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, parentName, childName)

	textBody := fmt.Sprintf(`Hi %s,

Thank you for creating an account for %s. We're excited to help your child learn sign language through short daily lessons and quizzes.

Here's what you can do next:
- Set up a study plan with the days and pace that suit you
- Follow the weekly schedule of bite-sized lessons
- Track progress and keep the learning streak going

---
This is an automated email from SingLang. Please do not reply.
`, parentName, childName)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
