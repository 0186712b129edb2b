package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"agency_billing/internal/domain/entities"
	"agency_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-pdf/fpdf"
)

var ErrBucketNotConfigured = errors.New("documents bucket not configured")

// S3API is the subset of *s3.Client used to store documents.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ S3API = (*s3.Client)(nil)

// PDFGenerator renders invoices with fpdf and stores them in S3.
type PDFGenerator struct {
	s3      S3API
	bucket  string
	company string
}

var _ interfaces.IDocumentGenerator = (*PDFGenerator)(nil)

func NewPDFGenerator(client S3API, bucket, company string) *PDFGenerator {
	if company == "" {
		company = "Agence"
	}
	return &PDFGenerator{s3: client, bucket: bucket, company: company}
}

// GenerateInvoiceDocument returns the S3 key of the uploaded PDF.
func (g *PDFGenerator) GenerateInvoiceDocument(ctx context.Context, inv entities.Invoice, order entities.Order) (string, error) {
	if g.bucket == "" || g.s3 == nil {
		return "", ErrBucketNotConfigured
	}

	body, err := g.Render(inv, order)
	if err != nil {
		return "", fmt.Errorf("render invoice %s: %w", inv.InvoiceNumber, err)
	}

	key := InvoiceKey(inv)
	_, err = g.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		log.Printf("[invoice][documents] upload failed key=%s err=%v", key, err)
		return "", err
	}
	log.Printf("[invoice][documents] uploaded key=%s size=%d", key, len(body))
	return key, nil
}

func InvoiceKey(inv entities.Invoice) string {
	year := inv.CreatedAt.UTC().Format("2006")
	return fmt.Sprintf("invoices/%s/%s.pdf", year, inv.InvoiceNumber)
}

// Render produces the PDF bytes of an invoice.
func (g *PDFGenerator) Render(inv entities.Invoice, order entities.Order) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(inv.InvoiceNumber, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(g.company))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, tr("Facture "+inv.InvoiceNumber))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr("Date : "+inv.CreatedAt.Format("02/01/2006")))
	pdf.Ln(5)
	if inv.DueDate != nil {
		pdf.Cell(0, 6, tr("Échéance : "+inv.DueDate.Format("02/01/2006")))
		pdf.Ln(5)
	}
	if order.OrderNumber != "" {
		pdf.Cell(0, 6, tr("Commande : "+order.OrderNumber))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	for _, line := range billingLines(order.Billing) {
		pdf.Cell(0, 5, tr(line))
		pdf.Ln(5)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(100, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, tr("Qté"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Prix unitaire", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range inv.Items {
		pdf.CellFormat(100, 8, tr(it.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", it.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, money(it.UnitPrice.StringFixed(2), inv.Currency), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, money(it.Total.StringFixed(2), inv.Currency), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	totals := [][2]string{
		{"Montant HT", money(inv.Amount.StringFixed(2), inv.Currency)},
		{"TVA", money(inv.Tax.StringFixed(2), inv.Currency)},
		{"Total TTC", money(inv.Total.StringFixed(2), inv.Currency)},
	}
	for i, row := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Helvetica", "B", 11)
		}
		pdf.CellFormat(155, 7, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, row[1], "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func billingLines(b entities.BillingInfo) []string {
	var out []string
	for _, s := range []string{
		b.Company,
		b.Name,
		b.Address,
		strings.TrimSpace(b.PostalCode + " " + b.City),
		b.Country,
		b.Email,
	} {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func money(amount, currency string) string {
	return amount + " " + strings.ToUpper(currency)
}
