package service

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"kyra_advising_backend/internal/model"
	"kyra_advising_backend/internal/repository"
	"kyra_advising_backend/pkg/monitoring"

	"github.com/go-pdf/fpdf"
)

// AllProjects is the filter sentinel meaning "do not filter by project".
const AllProjects = "All Projects"

// csvHeader is a compatibility contract: consumers parse exports by these
// exact seven column names.
var csvHeader = []string{"email", "name", "project_title", "question", "response", "timestamp", "feedback_rating"}

type ExportService struct {
	QueryRepo *repository.QueryRepository
}

func NewExportService(queryRepo *repository.QueryRepository) *ExportService {
	return &ExportService{QueryRepo: queryRepo}
}

// Normalize maps the AllProjects sentinel to an unset project filter.
func Normalize(f repository.QueryLogFilter) repository.QueryLogFilter {
	if f.ProjectTitle == AllProjects {
		f.ProjectTitle = ""
	}
	return f
}

// ExportCSV renders the filtered query log as UTF-8 CSV bytes, ordered by
// timestamp descending. Returns nil bytes when no rows match.
func (s *ExportService) ExportCSV(f repository.QueryLogFilter) ([]byte, error) {
	rows, err := s.QueryRepo.Filtered(Normalize(f))
	if err != nil {
		monitoring.ExportCounter.WithLabelValues("csv", "error").Inc()
		return nil, err
	}
	if len(rows) == 0 {
		monitoring.ExportCounter.WithLabelValues("csv", "empty").Inc()
		return nil, nil
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, q := range rows {
		rating := ""
		if q.FeedbackRating != nil {
			rating = strconv.Itoa(*q.FeedbackRating)
		}
		rec := []string{
			q.Email,
			q.Name,
			q.ProjectTitle,
			q.Question,
			q.Response,
			q.Timestamp,
			rating,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	monitoring.ExportCounter.WithLabelValues("csv", "ok").Inc()
	return buf.Bytes(), nil
}

// Print-width truncation bounds for the PDF table.
const (
	pdfQuestionLimit = 50
	pdfResponseLimit = 100
)

// ExportPDF renders the filtered query log as a US-letter PDF with a single
// title line and one table whose header repeats on every page. Returns nil
// bytes when no rows match.
func (s *ExportService) ExportPDF(f repository.QueryLogFilter) ([]byte, error) {
	rows, err := s.QueryRepo.Filtered(Normalize(f))
	if err != nil {
		monitoring.ExportCounter.WithLabelValues("pdf", "error").Inc()
		return nil, err
	}
	if len(rows) == 0 {
		monitoring.ExportCounter.WithLabelValues("pdf", "empty").Inc()
		return nil, nil
	}

	data, err := renderPDFTable(rows)
	if err != nil {
		monitoring.ExportCounter.WithLabelValues("pdf", "error").Inc()
		return nil, err
	}
	monitoring.ExportCounter.WithLabelValues("pdf", "ok").Inc()
	return data, nil
}

func renderPDFTable(rows []model.Query) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle("Query Logs Report", true)
	// Core fonts are cp1252; the translator keeps arbitrary student text
	// from breaking the renderer.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 24, "Query Logs Report", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	headers := []string{"Email", "Name", "Project", "Question", "Response", "Timestamp", "Rating"}
	widths := []float64{80, 80, 80, 100, 120, 80, 52}
	const lineHeight = 10.0

	pdf.SetDrawColor(128, 128, 128)

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(211, 211, 211)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 16, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetFillColor(245, 245, 245)
	}
	drawHeader()

	_, pageHeight := pdf.GetPageSize()
	leftMargin, _, _, bottomMargin := pdf.GetMargins()

	for _, q := range rows {
		rating := "Not rated"
		if q.FeedbackRating != nil {
			rating = strconv.Itoa(*q.FeedbackRating)
		}
		cells := []string{
			q.Email,
			q.Name,
			q.ProjectTitle,
			truncate(q.Question, pdfQuestionLimit),
			truncate(q.Response, pdfResponseLimit),
			q.Timestamp,
			rating,
		}

		lines := make([][]string, len(cells))
		maxLines := 1
		for i, cell := range cells {
			ls := pdf.SplitText(tr(cell), widths[i]-4)
			if len(ls) == 0 {
				ls = []string{""}
			}
			lines[i] = ls
			if len(ls) > maxLines {
				maxLines = len(ls)
			}
		}
		rowHeight := float64(maxLines)*lineHeight + 4

		if pdf.GetY()+rowHeight > pageHeight-bottomMargin {
			pdf.AddPage()
			drawHeader()
		}

		x := leftMargin
		y := pdf.GetY()
		for i := range cells {
			pdf.Rect(x, y, widths[i], rowHeight, "FD")
			for j, ln := range lines[i] {
				pdf.Text(x+2, y+lineHeight*float64(j+1)-2, ln)
			}
			x += widths[i]
		}
		pdf.SetY(y + rowHeight)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
