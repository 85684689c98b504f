package service

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// ReportSection - одна страница отчета: график и проблемы его данных
type ReportSection struct {
	Kind   Kind
	Title  string
	PNG    []byte
	Issues []string
}

// WriteReport собирает PDF отчет, по странице на график
func WriteReport(eng *Engine, title string, sections []ReportSection, w io.Writer) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	// встроенные шрифты покрывают только cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetCreator("sentiviz", true)

	for i, s := range sections {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, tr(s.Title), "", 1, "C", false, 0, "")

		name := fmt.Sprintf("chart-%d-%s", i, s.Kind)
		opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		info := pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(s.PNG))

		pageW, pageH := pdf.GetPageSize()
		left, top, right, _ := pdf.GetMargins()
		maxW := pageW - left - right
		imgW, imgH := maxW, pageH*0.6
		if info != nil && info.Height() > 0 {
			// сохраняем пропорции изображения
			imgW = imgH * info.Width() / info.Height()
			if imgW > maxW {
				imgW, imgH = maxW, maxW*info.Height()/info.Width()
			}
		}
		pdf.ImageOptions(name, left+(maxW-imgW)/2, top+12, imgW, imgH, false, opt, 0, "")
		pdf.SetY(top + 14 + imgH)

		pdf.SetFont("Arial", "", 10)
		if len(s.Issues) == 0 {
			pdf.CellFormat(0, 6, tr(eng.translate("No data issues")), "", 1, "L", false, 0, "")
			continue
		}
		pdf.CellFormat(0, 6, tr(eng.translate("Data issues")), "", 1, "L", false, 0, "")
		for _, issue := range s.Issues {
			pdf.MultiCell(0, 5, tr("- "+issue), "", "L", false)
		}
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
