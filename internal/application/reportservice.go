package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/sspanel-tools/checkin-bot/internal/domain/model"
)

// reportZone pins report timestamps to UTC+8 so CI runners in UTC render the
// wall clock the panel operates on.
var reportZone = time.FixedZone("UTC+8", 8*60*60)

// emptyReport is returned when there are no outcomes to report.
const emptyReport = "no results"

// maskedAccount replaces every account identifier in the report. Full
// redaction; report entries are keyed by position instead.
const maskedAccount = "***"

// ReportService renders a batch of outcomes into the notification text block.
type ReportService struct{}

// NewReportService creates a ReportService.
func NewReportService() *ReportService {
	return &ReportService{}
}

// Format renders outcomes in input order into a single text block. The
// timestamp renders in fixed UTC+8 regardless of the host zone, and account
// identifiers never appear in the output.
func (s *ReportService) Format(outcomes []model.Outcome, now time.Time) string {
	if len(outcomes) == 0 {
		return emptyReport
	}

	succeeded := 0
	for _, o := range outcomes {
		if o.Succeeded {
			succeeded++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Checkin report - %s\n\n", now.In(reportZone).Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "total: %d, succeeded: %d\n\n", len(outcomes), succeeded)

	for i, o := range outcomes {
		status := "❌ failed"
		if o.Succeeded {
			status = "✅ success"
		}

		fmt.Fprintf(&b, "%d. %s\n", i+1, maskedAccount)
		fmt.Fprintf(&b, "   status: %s\n", status)
		fmt.Fprintf(&b, "   message: %s\n", o.Message)
		if o.Error != "" {
			fmt.Fprintf(&b, "   error: %s\n", o.Error)
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}
