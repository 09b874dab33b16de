package service

import (
	"MCQ-Generator-Backend/internal/model"
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/signintech/gopdf"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// Page geometry in points, measured from the top edge of a US Letter page.
// Every y is a text baseline: the title sits 750 pt above the bottom edge and
// no baseline goes lower than 50 pt above it.
const (
	pageWidth    = 612.0
	pageHeight   = 792.0
	marginLeft   = 50.0
	marginRight  = 50.0
	choiceIndent = 70.0
	titleY       = 42.0
	firstLineY   = 62.0
	lineHeight   = 20.0
	bottomLimit  = pageHeight - 50.0

	fontFamily = "goregular"
)

type PDFOptions struct {
	Title    string
	FontSize float64
}

type PDFService struct {
	opts   PDFOptions
	font   *sfnt.Font
	logger *logrus.Logger
}

func NewPDFService(opts PDFOptions, logger *logrus.Logger) (*PDFService, error) {
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("解析字体失败: %w", err)
	}
	return &PDFService{opts: opts, font: f, logger: logger}, nil
}

// textLine is one line of output before pagination.
type textLine struct {
	x    float64
	text string
}

// placedLine is a textLine with its final page (0-based) and y position.
type placedLine struct {
	textLine
	page int
	y    float64
}

// Render lays out the title and every question with lettered choices and
// returns the encoded PDF.
func (s *PDFService) Render(mcqs []model.MCQ) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		Unit:     gopdf.UnitPT,
		PageSize: *gopdf.PageSizeLetter,
	})
	defer pdf.Close()

	pdf.SetInfo(gopdf.PdfInfo{
		Title:        s.opts.Title,
		Creator:      "MCQ-Generator-Backend",
		CreationDate: time.Now(),
	})

	if err := pdf.AddTTFFontData(fontFamily, goregular.TTF); err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}

	newPage := func() error {
		pdf.AddPage()
		if err := pdf.SetFont(fontFamily, "", s.opts.FontSize); err != nil {
			return fmt.Errorf("设置字体失败: %w", err)
		}
		return nil
	}

	if err := newPage(); err != nil {
		return nil, err
	}
	if err := drawText(pdf, marginLeft, titleY, s.sanitize(s.opts.Title)); err != nil {
		return nil, err
	}

	wrap := func(text string, width float64) []string {
		return s.wrapLines(text, width, pdf.SplitTextWithWordWrap, pdf.SplitText)
	}

	placed := paginate(buildBlocks(mcqs, s.sanitize, wrap))
	page := 0
	for _, l := range placed {
		for page < l.page {
			if err := newPage(); err != nil {
				return nil, err
			}
			page++
		}
		if err := drawText(pdf, l.x, l.y, l.text); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("写入PDF失败: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"mcqs":  len(mcqs),
		"pages": page + 1,
		"bytes": buf.Len(),
	}).Debug("PDF 渲染完成")
	return buf.Bytes(), nil
}

// drawText writes text with its baseline at y.
func drawText(pdf *gopdf.GoPdf, x, y float64, text string) error {
	pdf.SetXY(x, y)
	if err := pdf.Text(text); err != nil {
		return fmt.Errorf("绘制文本失败 %q: %w", text, err)
	}
	return nil
}

type splitFunc func(text string, width float64) ([]string, error)

// wrapLines breaks text on word boundaries. A token wider than the line falls
// back to a character split; if that fails too the text is kept on one line.
func (s *PDFService) wrapLines(text string, width float64, byWord, byChar splitFunc) []string {
	if strings.TrimSpace(text) == "" {
		return []string{text}
	}
	lines, err := byWord(text, width)
	if err == nil && len(lines) > 0 {
		return lines
	}
	s.logger.WithError(err).WithField("width", width).Debug("按单词换行失败，改为按字符换行")

	lines, err = byChar(text, width)
	if err == nil && len(lines) > 0 {
		return lines
	}
	s.logger.WithError(err).WithField("width", width).Debug("按字符换行失败，保持单行输出")
	return []string{text}
}

// buildBlocks produces one block per question: the question line(s) followed
// by the choice lines.
func buildBlocks(mcqs []model.MCQ, clean func(string) string, wrap func(string, float64) []string) [][]textLine {
	blocks := make([][]textLine, 0, len(mcqs))
	for i, mcq := range mcqs {
		var block []textLine
		question := fmt.Sprintf("Q%d: %s", i+1, clean(mcq.Question))
		for _, t := range wrap(question, pageWidth-marginLeft-marginRight) {
			block = append(block, textLine{x: marginLeft, text: t})
		}
		for j, choice := range mcq.Choices {
			text := fmt.Sprintf("%c) %s", rune('A'+j), clean(choice))
			for _, t := range wrap(text, pageWidth-choiceIndent-marginRight) {
				block = append(block, textLine{x: choiceIndent, text: t})
			}
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// paginate assigns pages and y positions. A block moves to a fresh page when
// it would cross the bottom limit and fits on an empty page; blocks taller than
// a page break line by line.
func paginate(blocks [][]textLine) []placedLine {
	var placed []placedLine
	page, y := 0, firstLineY

	for _, block := range blocks {
		if len(block) == 0 {
			continue
		}
		height := float64(len(block)-1) * lineHeight
		if y+height > bottomLimit && y > titleY && titleY+height <= bottomLimit {
			page, y = page+1, titleY
		}
		for _, l := range block {
			if y > bottomLimit {
				page, y = page+1, titleY
			}
			placed = append(placed, placedLine{textLine: l, page: page, y: y})
			y += lineHeight
		}
	}
	return placed
}

// sanitize folds control characters to spaces and replaces runes the
// embedded font cannot draw with '?'.
func (s *PDFService) sanitize(text string) string {
	var buf sfnt.Buffer
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		idx, err := s.font.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			return '?'
		}
		return r
	}, text)
}
