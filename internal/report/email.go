package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"estate-crawler/config"
	"estate-crawler/helpers"
	"estate-crawler/logger"
	"estate-crawler/services/store"
)

// BuildMetricsBody formats the per-category summary lines of the metrics
// email. Categories are rendered in table order, labeled by their location
// substring (the aggregate bucket by its name); a category without an
// average renders as 0.
func BuildMetricsBody(metrics *store.DailyMetrics, categories []config.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Metrics (Average price/size) for %s:\n", metrics.Date)

	for _, category := range categories {
		label := category.Substring
		if label == "" {
			label = category.Name
		}
		avg := int64(metrics.Avgs[category.Name])
		count := int64(metrics.Counts[category.Name])
		fmt.Fprintf(&b, "- %s: %s (%s items)\n", label, helpers.FormatNumber(avg), helpers.FormatNumber(count))
	}
	return b.String()
}

// ChartAttachments returns the rendered chart artifacts that exist in the
// graphs directory. Missing files are skipped, not errors.
func ChartAttachments(graphDir string) []string {
	var attachments []string
	for _, name := range []string{TrendChartFile} {
		path := filepath.Join(graphDir, name)
		if _, err := os.Stat(path); err == nil {
			attachments = append(attachments, path)
		}
	}
	return attachments
}

// Mailer sends the daily metrics report over SMTP
type Mailer struct {
	cfg *config.Config
	log *logger.Logger
}

// NewMailer creates a mailer from the SMTP configuration
func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		cfg: cfg,
		log: logger.ForReport(),
	}
}

// SendMetricsEmail builds and sends the metrics summary with the given chart
// attachments
func (m *Mailer) SendMetricsEmail(metrics *store.DailyMetrics, attachments []string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTPFrom)
	msg.SetHeader("To", m.cfg.SMTPTo)
	msg.SetHeader("Subject", "Real Estate Metrics "+time.Now().UTC().Format("2006-01-02"))
	msg.SetBody("text/plain", BuildMetricsBody(metrics, m.cfg.Categories))

	for _, path := range attachments {
		msg.Attach(path)
	}

	dialer := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send metrics email: %w", err)
	}

	m.log.Info().
		Str("to", m.cfg.SMTPTo).
		Int("attachments", len(attachments)).
		Msg("metrics email sent")
	return nil
}
