// Package certificate renders share certificates as fixed-layout PDF
// documents.
package certificate

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/google/uuid"
)

// Data is the issuance + shareholder snapshot a certificate is rendered from.
type Data struct {
	CertificateID   uuid.UUID
	ShareholderID   uuid.UUID
	ShareholderName string
	NumberOfShares  int64
	PricePerShare   *float64
	IssueDate       time.Time
}

// Renderer draws certificates for one company.
type Renderer struct {
	companyName string
}

func NewRenderer(companyName string) *Renderer {
	return &Renderer{companyName: companyName}
}

// FormatPrice renders an optional per-share price for display ("N/A" when
// absent). Shared with the mail template.
func FormatPrice(price *float64) string {
	if price == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *price)
}

// Render produces the certificate PDF bytes.
func (r *Renderer) Render(d Data) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(0, 50)
	pdf.CellFormat(612, 30, "SHARE CERTIFICATE", "", 1, "C", false, 0, "")

	// Company info
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(100, 110)
	pdf.CellFormat(0, 16, fmt.Sprintf("Company: %s", r.companyName), "", 1, "L", false, 0, "")
	pdf.SetX(100)
	pdf.CellFormat(0, 16, fmt.Sprintf("Date: %s", time.Now().UTC().Format("2006-01-02")), "", 1, "L", false, 0, "")

	// Certificate number
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(100, 160)
	pdf.CellFormat(0, 18, fmt.Sprintf("Certificate No: %s", d.CertificateID), "", 1, "L", false, 0, "")

	// Owner statement
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(100, 195)
	pdf.CellFormat(0, 16, fmt.Sprintf("This certifies that %s", d.ShareholderName), "", 1, "L", false, 0, "")
	pdf.SetX(100)
	pdf.CellFormat(0, 16, fmt.Sprintf("is the registered owner of %d shares", d.NumberOfShares), "", 1, "L", false, 0, "")

	// Details table
	rows := [][2]string{
		{"Shareholder ID", d.ShareholderID.String()},
		{"Issue Date", d.IssueDate.Format("2006-01-02")},
		{"Number of Shares", fmt.Sprintf("%d", d.NumberOfShares)},
		{"Price Per Share", FormatPrice(d.PricePerShare)},
	}
	pdf.SetXY(100, 250)
	for i, row := range rows {
		if i == 0 {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.SetFillColor(128, 128, 128)
			pdf.SetTextColor(245, 245, 245)
		} else {
			pdf.SetFont("Helvetica", "", 12)
			pdf.SetFillColor(245, 245, 220)
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.SetX(100)
		pdf.CellFormat(200, 24, row[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(200, 24, row[1], "1", 1, "L", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)

	// Footer
	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetXY(100, 680)
	pdf.CellFormat(0, 14, "This is an electronically generated certificate", "", 1, "L", false, 0, "")
	pdf.SetX(100)
	pdf.CellFormat(0, 14, fmt.Sprintf("Generated on: %s", time.Now().UTC().Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
