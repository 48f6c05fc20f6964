// Package browser prints HTML documents to PDF with headless Chrome.
package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/jonathan/fastfolio/internal/logging"
)

// DefaultTimeout bounds one print, including browser start-up
const DefaultTimeout = 60 * time.Second

// A4 paper in inches
const (
	paperWidth  = 8.27
	paperHeight = 11.69
)

// chromeNames are the executables chromedp would try on PATH
var chromeNames = []string{
	"headless_shell",
	"headless-shell",
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
}

// Printer renders HTML to PDF bytes in a fresh headless browser per call
type Printer struct {
	execPath string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewPrinter creates a Printer. An empty execPath lets chromedp locate Chrome.
func NewPrinter(execPath string, logger *zap.Logger) *Printer {
	logger = logging.OrNop(logger)
	return &Printer{
		execPath: execPath,
		timeout:  DefaultTimeout,
		logger:   logger,
	}
}

// WithTimeout returns a copy of p using timeout for each print
func (p *Printer) WithTimeout(timeout time.Duration) *Printer {
	cp := *p
	cp.timeout = timeout
	return &cp
}

// Available reports whether a Chrome executable can be found
func (p *Printer) Available() bool {
	if p.execPath != "" {
		_, err := os.Stat(p.execPath)
		return err == nil
	}
	for _, name := range chromeNames {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

// PrintPDF loads html into a blank page and prints it to A4 PDF
func (p *Printer) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.execPath != "" {
		opts = append(opts, chromedp.ExecPath(p.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, p.timeout)
	defer cancelTimeout()

	start := time.Now()
	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("browser print failed: %w", err)
	}

	p.logger.Debug("printed html to pdf",
		zap.Int("html_bytes", len(html)),
		zap.Int("pdf_bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)))
	return pdf, nil
}
