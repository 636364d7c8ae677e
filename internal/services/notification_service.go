// internal/services/notification_service.go
package services

import (
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stagefolio/stagefolio-backend/internal/config"
	"github.com/stagefolio/stagefolio-backend/internal/models"
)

// NotificationService records admin-queue notifications and sends best-effort
// emails to requesters on claim decisions. Email failures are logged, never
// propagated; the claim transitions have already committed by the time these
// run.
type NotificationService struct {
	db     *gorm.DB
	config *config.Config
}

func NewNotificationService(db *gorm.DB, config *config.Config) *NotificationService {
	return &NotificationService{
		db:     db,
		config: config,
	}
}

func (s *NotificationService) NotifyClaimSubmitted(claim *models.ClaimRequest) {
	profileName := "a profile"
	if claim.Profile != nil {
		profileName = claim.Profile.DisplayName
	}
	requesterName := claim.RequesterID.String()
	if claim.Requester != nil {
		requesterName = claim.Requester.Username
	}

	notification := &models.AdminNotification{
		Type:                "claim_submitted",
		Title:               "New ownership claim",
		Message:             fmt.Sprintf("User %s claimed ownership of %s", requesterName, profileName),
		Priority:            "medium",
		RelatedResourceType: "claim_request",
		RelatedResourceID:   &claim.ID,
	}

	if err := s.db.Create(notification).Error; err != nil {
		logrus.WithError(err).Error("Failed to create claim notification")
	}
}

func (s *NotificationService) NotifyClaimDecided(claim *models.ClaimRequest) {
	if claim.Requester == nil {
		return
	}

	var subject, body string
	switch claim.Status {
	case models.ClaimStatusApproved:
		subject = "Your profile claim was approved"
		body = fmt.Sprintf("Hi %s,\r\n\r\nYour ownership claim has been approved. You can now edit the profile.\r\n", claim.Requester.Username)
	case models.ClaimStatusRejected:
		subject = "Your profile claim was rejected"
		reason := ""
		if claim.DecisionReason != nil && *claim.DecisionReason != "" {
			reason = fmt.Sprintf("\r\nReason: %s\r\n", *claim.DecisionReason)
		}
		body = fmt.Sprintf("Hi %s,\r\n\r\nYour ownership claim was not approved.%s", claim.Requester.Username, reason)
	default:
		return
	}

	if err := s.sendEmail(claim.Requester.Email, subject, body); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"claim_id": claim.ID,
			"status":   claim.Status,
		}).Error("Failed to send claim decision email")
	}
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPUsername == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("SMTP not configured; skipping email")
		return nil
	}

	auth := smtp.PlainAuth(
		"",
		s.config.Email.SMTPUsername,
		s.config.Email.SMTPPassword,
		s.config.Email.SMTPHost,
	)

	msg := fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body,
	)

	addr := s.config.Email.SMTPHost + ":" + s.config.Email.SMTPPort
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, []byte(msg))
}
