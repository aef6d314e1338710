// Package report renders job reports for export and filters them for search.
package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jobportal/jobportal-client/internal/resources"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

var jobReportHeader = []string{"Sub Name", "Charge Per Month", "Request Status", "Request Date", "Sub Status"}

// FilterJobReports keeps the reports whose name contains query, ignoring
// case. A blank query returns every report.
func FilterJobReports(reports []resources.JobReport, query string) []resources.JobReport {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return reports
	}
	out := make([]resources.JobReport, 0, len(reports))
	for _, r := range reports {
		if strings.Contains(strings.ToLower(r.SubName), query) {
			out = append(out, r)
		}
	}
	return out
}

// WriteJobReportsCSV streams reports as CRLF separated CSV with a header row.
func WriteJobReportsCSV(w io.Writer, reports []resources.JobReport) error {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true

	if err := writer.Write(jobReportHeader); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}
	for i, r := range reports {
		row := []string{r.SubName, r.ChargePerMonth, r.RequestStatus, r.RequestDate, r.SubStatus}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("report: write row %d: %w", i, err)
		}
		if (i+1)%csvFlushEvery == 0 {
			writer.Flush()
			if err := writer.Error(); err != nil {
				return fmt.Errorf("report: flush: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("report: flush: %w", err)
	}
	return buf.Flush()
}
