// Package invoice assembles the printable summary of a service order and
// renders it as PDF.
package invoice

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"appliance-service-backend/config"
	"appliance-service-backend/internal/billing"
	"appliance-service-backend/internal/model"
)

// Issuer is the business printed in the header.
type Issuer struct {
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Currency string `json:"currency"`
}

// IssuerFrom copies the invoice header out of the billing configuration.
func IssuerFrom(cfg config.BillingConfig) Issuer {
	return Issuer{
		Name:     cfg.BusinessName,
		Address:  cfg.BusinessAddress,
		Phone:    cfg.BusinessPhone,
		Currency: cfg.Currency,
	}
}

// Line is one billed row. For labor, Quantity holds the hours and UnitPrice
// the hourly rate.
type Line struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// Visit is the scheduled appointment as printed.
type Visit struct {
	Date       model.Date `json:"date"`
	TimeSlot   string     `json:"time_slot"`
	Technician string     `json:"technician,omitempty"`
}

// Document is everything the print view shows for one order.
type Document struct {
	Issuer             Issuer            `json:"issuer"`
	OrderNumber        string            `json:"order_number"`
	Status             model.OrderStatus `json:"status"`
	ServiceType        model.ServiceType `json:"service_type"`
	CreatedAt          time.Time         `json:"created_at"`
	Client             model.Client      `json:"client"`
	ApplianceType      string            `json:"appliance_type"`
	Brand              string            `json:"brand,omitempty"`
	Model              string            `json:"model,omitempty"`
	SerialNumber       string            `json:"serial_number,omitempty"`
	ProblemDescription string            `json:"problem_description"`
	Observations       string            `json:"observations,omitempty"`
	Visit              *Visit            `json:"visit,omitempty"`
	Parts              []Line            `json:"parts"`
	Labor              []Line            `json:"labor"`
	Costs              billing.Breakdown `json:"costs"`
}

// Build assembles the document of a fully loaded order (client, brand, lines
// and appointment preloaded). technician may be nil.
func Build(o *model.ServiceOrder, technician *model.Technician, calc *billing.Calculator, issuer Issuer) *Document {
	doc := &Document{
		Issuer:             issuer,
		OrderNumber:        o.OrderNumber,
		Status:             o.Status,
		ServiceType:        o.ServiceType,
		CreatedAt:          o.CreatedAt,
		ApplianceType:      o.ApplianceType,
		Model:              deref(o.Model),
		SerialNumber:       deref(o.SerialNumber),
		ProblemDescription: o.ProblemDescription,
		Observations:       deref(o.Observations),
		Parts:              make([]Line, 0, len(o.Parts)),
		Labor:              make([]Line, 0, len(o.Labor)),
		Costs:              calc.Compute(o.Parts, o.Labor).Rounded(),
	}
	if o.Client != nil {
		doc.Client = *o.Client
	}
	if o.Brand != nil {
		doc.Brand = o.Brand.Name
	}
	if a := o.Appointment; a != nil {
		doc.Visit = &Visit{Date: a.Date, TimeSlot: a.TimeSlot}
		if technician != nil {
			doc.Visit.Technician = technician.Name
		}
	}
	for _, p := range o.Parts {
		doc.Parts = append(doc.Parts, Line{
			Description: p.Description,
			Quantity:    p.Quantity,
			UnitPrice:   p.UnitPrice,
			Amount:      billing.PartSubtotal(p).Round(2),
		})
	}
	for _, l := range o.Labor {
		doc.Labor = append(doc.Labor, Line{
			Description: l.Description,
			Quantity:    l.Hours,
			UnitPrice:   l.Rate,
			Amount:      billing.LaborSubtotal(l).Round(2),
		})
	}
	return doc
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// RenderPDF writes the document as a single A4 page (more if the line
// tables overflow).
func (d *Document) RenderPDF(w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(d.OrderNumber, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	title := "Orden de Servicio"
	if d.Issuer.Name != "" {
		title = d.Issuer.Name
	}
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	for _, s := range []string{d.Issuer.Address, d.Issuer.Phone} {
		if s != "" {
			pdf.Cell(0, 5, tr(s))
			pdf.Ln(5)
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Orden %s  ·  %s", d.OrderNumber, d.Status)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	field := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(35, 6, tr(label))
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, tr(value), "", "L", false)
	}
	field("Fecha:", d.CreatedAt.Format("02/01/2006"))
	field("Cliente:", d.Client.Name)
	field("Teléfono:", deref(d.Client.Phone))
	field("Correo:", deref(d.Client.Email))
	field("Dirección:", deref(d.Client.Address))
	field("Equipo:", d.ApplianceType)
	field("Marca:", d.Brand)
	field("Modelo:", d.Model)
	field("No. de serie:", d.SerialNumber)
	field("Servicio:", string(d.ServiceType))
	field("Falla:", d.ProblemDescription)
	field("Observaciones:", d.Observations)
	if d.Visit != nil {
		field("Visita:", fmt.Sprintf("%s, %s", d.Visit.Date.Time().Format("02/01/2006"), d.Visit.TimeSlot))
		field("Técnico:", d.Visit.Technician)
	}

	d.table(pdf, tr, "Refacciones", "Cant.", d.Parts)
	d.table(pdf, tr, "Mano de obra", "Horas", d.Labor)

	pdf.Ln(4)
	total := func(label string, v decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(150, 6, tr(label), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, d.money(v), "", 1, "R", false, 0, "")
	}
	total("Subtotal", d.Costs.Subtotal, false)
	total(fmt.Sprintf("IVA (%s%%)", d.Costs.TaxRate.Mul(decimal.NewFromInt(100)).String()), d.Costs.Tax, false)
	total("Total", d.Costs.Total, true)

	return pdf.Output(w)
}

func (d *Document) table(pdf *gofpdf.Fpdf, tr func(string) string, title, qtyLabel string, lines []Line) {
	if len(lines) == 0 {
		return
	}
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 7, tr(title))
	pdf.Ln(7)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range []struct {
		w     float64
		label string
		align string
	}{{100, "Descripción", "L"}, {20, qtyLabel, "R"}, {30, "Precio", "R"}, {40, "Importe", "R"}} {
		pdf.CellFormat(h.w, 6, tr(h.label), "1", 0, h.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, l := range lines {
		pdf.CellFormat(100, 6, tr(l.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, l.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, d.money(l.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, d.money(l.Amount), "1", 1, "R", false, 0, "")
	}
}

func (d *Document) money(v decimal.Decimal) string {
	s := "$" + v.StringFixed(2)
	if d.Issuer.Currency != "" {
		s += " " + d.Issuer.Currency
	}
	return s
}
