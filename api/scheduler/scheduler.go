package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/studyhall/studyhall-api/databases"
	templates "github.com/studyhall/studyhall-api/templates/html"
)

// Scheduler handles periodic background jobs for the notification subsystem
type Scheduler struct {
	cron           *cron.Cron
	NDB            databases.NotificationDatabase
	UDB            databases.UserDatabase
	sendgridAPIKey string
	senderEmail    string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(ndb databases.NotificationDatabase, udb databases.UserDatabase, sendgridAPIKey, senderEmail string) *Scheduler {
	return &Scheduler{
		cron:           cron.New(cron.WithLocation(time.UTC)),
		NDB:            ndb,
		UDB:            udb,
		sendgridAPIKey: sendgridAPIKey,
		senderEmail:    senderEmail,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Send unread notification digests daily at 1 PM UTC
	_, err := s.cron.AddFunc("0 13 * * *", s.sendUnreadDigests)
	if err != nil {
		zap.S().Errorw("failed to register unread digest job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Notification scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Notification scheduler stopped")
}

// sendUnreadDigests emails every user that has unread notifications a
// summary so activity does not go stale between visits
func (s *Scheduler) sendUnreadDigests() {
	if s.sendgridAPIKey == "" {
		zap.S().Debug("Sendgrid API key not configured, skipping unread digest job")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	zap.S().Info("Running unread notification digest job")

	unread, err := s.NDB.Find(ctx, bson.M{"read": false})
	if err != nil {
		zap.S().Errorw("failed to find unread notifications", "error", err)
		return
	}

	counts := make(map[string]int)
	for _, n := range unread {
		counts[n.UserID]++
	}

	sent := 0
	for userID, count := range counts {
		user, err := s.UDB.FindOne(ctx, bson.M{"_id": userID})
		if err != nil {
			zap.S().Errorw("failed to find user for digest", "userId", userID, "error", err)
			continue
		}
		if user.Email == "" {
			continue
		}
		if err := s.sendDigestEmail(user.Email, user.Name, count); err != nil {
			zap.S().Errorw("failed to send digest email", "userId", userID, "error", err)
			continue
		}
		sent++
	}

	zap.S().Infow("Unread notification digest job finished", "users", len(counts), "sent", sent)
}

func (s *Scheduler) sendDigestEmail(toEmail, toName string, unread int) error {
	from := mail.NewEmail("StudyHall", s.senderEmail)
	to := mail.NewEmail(toName, toEmail)
	htmlContent := templates.RenderUnreadDigestEmail(toName, unread)
	plainText := "You have unread classroom updates waiting in StudyHall."
	message := mail.NewSingleEmail(from, "You have unread updates", to, plainText, htmlContent)
	client := sendgrid.NewSendClient(s.sendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
