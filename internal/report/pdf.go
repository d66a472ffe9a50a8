// Package report renders risk assessments and incidents as paginated PDF
// documents.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"hms-system/internal/models"
	"hms-system/internal/risk"

	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"
)

// A4 portrait, millimetres
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginX      = 15.0
	marginTop    = 15.0
	marginBottom = 18.0
	headerHeight = 10.0
	contentWidth = pageWidth - 2*marginX
	badgeWidth   = 38.0

	lineHeight  = 5.0
	titleHeight = 9.0
	gapHeight   = 4.0

	font = "Helvetica"
)

const dateFormat = "02.01.2006"

type Generator struct {
	Labels risk.Labels
	Now    func() time.Time
}

func NewGenerator(labels risk.Labels) *Generator {
	return &Generator{Labels: labels, Now: time.Now}
}

type badge struct {
	text    string
	r, g, b int
}

// line is one row of output. text is already in the PDF code page.
type line struct {
	text  string
	style string
	size  float64
	h     float64
	badge *badge
}

type document struct {
	pdf    *fpdf.Fpdf
	layout *Layout
	tr     func(string) string
}

func newDocument(title string, generated time.Time) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, marginTop, marginX)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("{nb}")
	pdf.SetTitle(title, true)
	pdf.SetCreator("HMS System", true)
	pdf.SetCreationDate(generated)

	d := &document{
		pdf:    pdf,
		layout: NewLayout(pageHeight, marginTop, marginBottom, headerHeight),
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
	}

	pdf.SetHeaderFunc(func() {
		pdf.SetXY(marginX, marginTop)
		pdf.SetFont(font, "", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(contentWidth/2, 5, d.tr(title), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentWidth/2, 5, d.tr("Generert "+generated.Format(dateFormat+" 15:04")), "", 0, "R", false, 0, "")
		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(marginX, marginTop+6, pageWidth-marginX, marginTop+6)
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetXY(marginX, pageHeight-marginBottom+6)
		pdf.SetFont(font, "", 8)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(contentWidth, 5, fmt.Sprintf("Side %d av {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	return d
}

// reserve claims h and adds a PDF page whenever the layout starts one.
func (d *document) reserve(h float64) float64 {
	y, newPage := d.layout.Reserve(h)
	if newPage {
		d.pdf.AddPage()
	}
	return y
}

func (d *document) text(s, style string, size float64) line {
	return line{text: d.tr(s), style: style, size: size, h: lineHeight}
}

// wrap splits s into lines that fit the content width.
func (d *document) wrap(s, style string, size float64) []line {
	s = strings.TrimSpace(s)
	if s == "" {
		s = "-"
	}
	d.pdf.SetFont(font, style, size)

	var out []line
	for _, part := range d.pdf.SplitLines([]byte(d.tr(s)), contentWidth) {
		out = append(out, line{text: string(part), style: style, size: size, h: lineHeight})
	}
	return out
}

func (d *document) draw(l line) {
	y := d.reserve(l.h)
	if l.text == "" && l.badge == nil {
		return
	}

	d.pdf.SetFont(font, l.style, l.size)
	d.pdf.SetXY(marginX, y)

	if l.badge == nil {
		d.pdf.CellFormat(contentWidth, l.h, l.text, "", 0, "L", false, 0, "")
		return
	}

	d.pdf.CellFormat(contentWidth-badgeWidth, l.h, l.text, "", 0, "L", false, 0, "")
	d.pdf.SetFillColor(l.badge.r, l.badge.g, l.badge.b)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.CellFormat(badgeWidth, l.h, d.tr(l.badge.text), "", 0, "C", true, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
}

// block draws lines, moving them to a fresh page first when they would
// otherwise be split but fit on one page.
func (d *document) block(lines []line) {
	var total float64
	for _, l := range lines {
		total += l.h
	}
	if d.layout.NeedsBreak(total) {
		d.layout.Break()
		d.pdf.AddPage()
	}
	for _, l := range lines {
		d.draw(l)
	}
}

func (d *document) heading(title, subtitle string) {
	t := d.text(title, "B", 16)
	t.h = titleHeight
	d.block([]line{
		t,
		d.text(subtitle, "", 10),
		{h: gapHeight},
	})
}

func (d *document) finish(w io.Writer) (int, error) {
	if err := d.pdf.Error(); err != nil {
		return 0, goerr.Wrap(err, "failed to lay out pdf")
	}
	pages := d.pdf.PageCount()
	if err := d.pdf.Output(w); err != nil {
		return 0, goerr.Wrap(err, "failed to write pdf")
	}
	return pages, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateFormat)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// RiskAssessments writes the risk register and returns the number of pages.
func (g *Generator) RiskAssessments(w io.Writer, items []models.RiskAssessment) (int, error) {
	now := g.Now()
	d := newDocument("Risikovurderinger", now)

	counts := make(map[risk.Level]int, len(risk.Levels))
	for _, a := range items {
		counts[a.RiskLevel]++
	}
	d.heading("Risikovurderinger", fmt.Sprintf("%d vurderinger  |  Kritisk: %d  Høy: %d  Middels: %d  Lav: %d",
		len(items), counts[risk.LevelCritical], counts[risk.LevelHigh], counts[risk.LevelMedium], counts[risk.LevelLow]))

	if len(items) == 0 {
		d.block([]line{d.text("Ingen registrerte risikovurderinger.", "I", 10)})
	}

	for _, a := range items {
		// derived columns are never trusted from storage
		res, err := risk.Compute(a.Likelihood, a.Consequence)
		if err != nil {
			return 0, goerr.Wrap(err, "risk assessment has invalid inputs", goerr.V("id", a.ID))
		}
		r, gr, b := res.Level.RGB()

		head := d.text(fmt.Sprintf("#%d  %s", a.ID, a.Title), "B", 11)
		head.h = 7
		head.badge = &badge{text: fmt.Sprintf("%d  %s", res.Score, res.Level.Label()), r: r, g: gr, b: b}

		lines := []line{
			head,
			d.text(fmt.Sprintf("Område: %s    Status: %s", orDash(a.Area), a.Status.Label()), "", 9),
			d.text(fmt.Sprintf("Ansvarlig: %s    Frist: %s", orDash(a.ResponsiblePerson), formatDate(a.Deadline)), "", 9),
			d.text(fmt.Sprintf("Sannsynlighet: %d (%s)    Konsekvens: %d (%s)",
				a.Likelihood, g.Labels.LikelihoodName(a.Likelihood),
				a.Consequence, g.Labels.ConsequenceName(a.Consequence)), "", 9),
			d.text("Forebyggende tiltak:", "B", 9),
		}
		lines = append(lines, d.wrap(a.PreventiveMeasures, "", 9)...)
		lines = append(lines, line{h: gapHeight})

		d.block(lines)
	}

	return d.finish(w)
}

func severityBadge(s models.Severity) *badge {
	lvl := risk.LevelLow
	switch s {
	case models.SeverityMedium:
		lvl = risk.LevelMedium
	case models.SeverityHigh:
		lvl = risk.LevelCritical
	}
	r, g, b := lvl.RGB()
	return &badge{text: s.Label(), r: r, g: g, b: b}
}

// Incidents writes the incident log and returns the number of pages.
func (g *Generator) Incidents(w io.Writer, items []models.Incident) (int, error) {
	now := g.Now()
	d := newDocument("Avviksrapporter", now)

	open := 0
	for _, i := range items {
		if i.Status != models.StatusDone {
			open++
		}
	}
	d.heading("Avviksrapporter", fmt.Sprintf("%d avvik  |  %d åpne", len(items), open))

	if len(items) == 0 {
		d.block([]line{d.text("Ingen registrerte avvik.", "I", 10)})
	}

	for _, i := range items {
		head := d.text(fmt.Sprintf("#%d  %s", i.ID, i.Title), "B", 11)
		head.h = 7
		head.badge = severityBadge(i.Severity)

		lines := []line{
			head,
			d.text(fmt.Sprintf("Kategori: %s    Status: %s", i.Category.Label(), i.Status.Label()), "", 9),
			d.text(fmt.Sprintf("Dato: %s    Sted: %s    Meldt av: %s",
				formatDate(i.OccurredAt), orDash(i.Location), orDash(i.ReportedBy)), "", 9),
			d.text("Beskrivelse:", "B", 9),
		}
		lines = append(lines, d.wrap(i.Description, "", 9)...)
		lines = append(lines, d.text("Strakstiltak:", "B", 9))
		lines = append(lines, d.wrap(i.ImmediateAction, "", 9)...)
		lines = append(lines, line{h: gapHeight})

		d.block(lines)
	}

	return d.finish(w)
}
