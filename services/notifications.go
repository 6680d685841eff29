package services

import (
	"fmt"
	"time"

	"intern-portal/models"
)

// offerMail builds the offer email with the letter attached and, when a task
// link exists for the role, an embedded button pointing at the task document.
func offerMail(intern *models.Intern, start, end time.Time, taskLink *models.TaskLink, letter []byte) OutgoingMail {
	taskSection := ""
	if taskLink != nil {
		taskSection = fmt.Sprintf(`
        <h2>Your Internship Task</h2>
        <p>To successfully complete your internship, you have to work on a project related to your role. Click the link below to view your task:</p>
        <a href="%s" target="_blank" style="display: inline-block; padding: 10px 20px; background-color: #007bff; color: white; text-decoration: none; border-radius: 5px; margin: 10px 0;">View Your Internship Tasks</a>
`, taskLink.URL)
	}

	body := fmt.Sprintf(`
        <h1>Congratulations on Your Internship Offer!</h1>
        <p>Dear %s,</p>
        <p>We are excited to welcome you as a %s Intern at GWING Software Technologies. Your internship officially starts on <strong>%s</strong> and will conclude on <strong>%s</strong>.</p>
        %s
        <h2>Important Guidelines for Your Internship Report</h2>
        <p>The most crucial part of your internship is the final report, which should be a minimum of 20 pages. This report is your opportunity to showcase everything you have learned and accomplished during your time with us.</p>
        <p><strong>Your report must include:</strong></p>
        <ul>
          <li>Your Name, Intern ID and Project Title</li>
          <li>A detailed account of your learning journey and activities throughout the internship.</li>
          <li>Links to your GitHub repositories for the projects.</li>
          <li>Links to LinkedIn video demonstrations of the projects you have completed. (Optional)</li>
        </ul>
        <p><strong>Submission Process:</strong> We will share a Google Form link in the official WhatsApp group for you to submit your internship report. Please submit your report in either PDF or Word format.</p>
        <p>Please find your official offer letter attached to this email. We are thrilled to have you on board and look forward to a successful internship experience with you.</p>
        <p>Best regards,<br>GWING Team</p>
`, intern.FullName, intern.Role, letterDate(start), letterDate(end), taskSection)

	return OutgoingMail{
		To:             intern.Email,
		Subject:        "GWING Internship Offer Letter & Guidelines",
		HTMLBody:       body,
		AttachmentName: fmt.Sprintf("%s-offer-letter.pdf", intern.FullName),
		Attachment:     letter,
	}
}

// certificateMail builds the completion email with the certificate attached.
func certificateMail(intern *models.Intern, certificate []byte) OutgoingMail {
	body := fmt.Sprintf(`
        <h3>Congratulations on completing your internship!</h3>
        <p>Dear %s,</p>
        <p>We are pleased to present you with your internship completion certificate.</p>
        <p>Thank you for joining GWING Software Technologies.</p>
`, intern.FullName)

	return OutgoingMail{
		To:             intern.Email,
		Subject:        "GWING Internship Certificate",
		HTMLBody:       body,
		AttachmentName: fmt.Sprintf("%s-certificate.pdf", intern.FullName),
		Attachment:     certificate,
	}
}
