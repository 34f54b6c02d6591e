// Package report renders a session summary as a PDF.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/sandeepkv93/goalquest/internal/tracker"
)

const DefaultFileName = "goalquest-report.pdf"

func WritePDF(w io.Writer, snap tracker.Snapshot, generatedAt time.Time) error {
	if w == nil {
		return errors.New("report: nil writer")
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(generatedAt)
	pdf.SetTitle("goalquest session report", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Session Report: %s", generatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Points: %d", snap.Points))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Rank: %s", snap.Rank))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Goals")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	if len(snap.Goals) == 0 {
		pdf.Cell(0, 8, "  - No goals yet.")
		pdf.Ln(8)
	}
	completed := 0
	for _, g := range snap.Goals {
		status := "[ ]"
		if g.IsCompleted {
			status = "[x]"
			completed++
		}
		line := fmt.Sprintf("%s %s (%d pts)", status, g.Title, g.Points)
		if strings.TrimSpace(g.Category) != "" {
			line += " - " + g.Category
		}
		pdf.Cell(0, 8, tr(line))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Goals Completed: %d of %d", completed, len(snap.Goals)))
	pdf.Ln(10)

	if len(snap.Badges) > 0 {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, "Unlocked Badges")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 12)
		for _, b := range snap.Badges {
			content := fmt.Sprintf("[%s] %s: %s", b.UnlockedAt.Format("15:04"), b.Title, b.Description)
			pdf.MultiCell(0, 8, tr(content), "", "", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("report: render pdf: %w", err)
	}
	return nil
}

// Export writes the report to path, defaulting to DefaultFileName, and
// returns the absolute path written.
func Export(path string, snap tracker.Snapshot, generatedAt time.Time) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultFileName
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := WritePDF(f, snap, generatedAt); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
