package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/formpulse/formpulse/internal/model"
)

// submittedAtLayout mirrors an en-US locale date-time string with a short
// timezone name, e.g. "01/15/2024, 03:04:05 PM UTC".
const submittedAtLayout = "01/02/2006, 03:04:05 PM MST"

var filenamePattern = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Filename derives the download name for a form's CSV export. Anything
// outside [a-zA-Z0-9] in the title is replaced with an underscore.
func Filename(title string) string {
	return filenamePattern.ReplaceAllString(title, "_") + "_responses.csv"
}

// WriteCSV renders a form snapshot as a complete CSV byte buffer: a header of
// "Response ID", "Submitted At" and one column per question in order, then one
// row per response in the order given (callers pass newest first). The rows
// are staged through a temporary file that is removed on every path before
// returning, so an error can never leave a half-written artifact behind.
func WriteCSV(form *model.Form) ([]byte, error) {
	tmp, err := os.CreateTemp("", fmt.Sprintf("form_%d_*.csv", form.ID))
	if err != nil {
		return nil, fmt.Errorf("creating export scratch file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := writeRecords(tmp, form); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("flushing export scratch file: %w", err)
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("reading back export: %w", err)
	}
	return data, nil
}

func writeRecords(f *os.File, form *model.Form) error {
	w := csv.NewWriter(f)

	header := make([]string, 0, len(form.Questions)+2)
	header = append(header, "Response ID", "Submitted At")
	for _, question := range form.Questions {
		header = append(header, question.QuestionText)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}

	for _, response := range form.Responses {
		answerMap := make(map[uint]string, len(response.Answers))
		for _, answer := range response.Answers {
			answerMap[answer.QuestionID] = answer.AnswerText
		}

		row := make([]string, 0, len(form.Questions)+2)
		row = append(row,
			fmt.Sprintf("%d", response.ID),
			formatSubmittedAt(response.SubmittedAt),
		)
		for _, question := range form.Questions {
			row = append(row, answerMap[question.ID]) // empty cell when unanswered
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing export row for response %d: %w", response.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing export rows: %w", err)
	}
	return nil
}

func formatSubmittedAt(t time.Time) string {
	return t.Format(submittedAtLayout)
}
