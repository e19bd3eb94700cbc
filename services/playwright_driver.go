package services

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"formfiller/config"
)

type playwrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	logger  *zap.Logger
}

// NewPlaywrightFactory returns a BrowserFactory that starts Chromium through playwright.
func NewPlaywrightFactory(cfg config.BrowserConfig, logger *zap.Logger) BrowserFactory {
	return func(ctx context.Context) (Browser, error) {
		pw, err := playwright.Run()
		if err != nil {
			return nil, fmt.Errorf("could not start playwright: %w", err)
		}

		browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(cfg.Headless),
		})
		if err != nil {
			_ = pw.Stop()
			return nil, fmt.Errorf("could not launch browser: %w", err)
		}

		if !cfg.Headless {
			logger.Info("Running browser in visible mode")
		}
		return &playwrightBrowser{pw: pw, browser: browser, logger: logger}, nil
	}
}

func (b *playwrightBrowser) OpenPage(ctx context.Context, url string, timeout time.Duration) (Page, error) {
	bctx, err := b.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	}); err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("could not navigate to %s: %w", url, err)
	}

	return &playwrightPage{page: page, context: bctx}, nil
}

func (b *playwrightBrowser) Close() error {
	if err := b.browser.Close(); err != nil {
		b.logger.Warn("Error closing browser", zap.Error(err))
	}
	if err := b.pw.Stop(); err != nil {
		return fmt.Errorf("could not stop playwright: %w", err)
	}
	return nil
}

type playwrightPage struct {
	page    playwright.Page
	context playwright.BrowserContext
}

func (p *playwrightPage) QuerySelector(selector string) (Element, error) {
	h, err := p.page.QuerySelector(selector)
	if err != nil || h == nil {
		return nil, err
	}
	return &playwrightElement{handle: h}, nil
}

func (p *playwrightPage) QuerySelectorAll(selector string) ([]Element, error) {
	handles, err := p.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	return wrapHandles(handles), nil
}

func (p *playwrightPage) PressKey(key string) error {
	return p.page.Keyboard().Press(key)
}

func (p *playwrightPage) Wait(d time.Duration) {
	p.page.WaitForTimeout(float64(d.Milliseconds()))
}

func (p *playwrightPage) Title() (string, error) {
	return p.page.Title()
}

func (p *playwrightPage) URL() string {
	return p.page.URL()
}

func (p *playwrightPage) Screenshot() ([]byte, error) {
	return p.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
}

// Close closes the page's context, which closes the page with it.
func (p *playwrightPage) Close() error {
	return p.context.Close()
}

type playwrightElement struct {
	handle playwright.ElementHandle
}

func wrapHandles(handles []playwright.ElementHandle) []Element {
	out := make([]Element, 0, len(handles))
	for _, h := range handles {
		out = append(out, &playwrightElement{handle: h})
	}
	return out
}

func (e *playwrightElement) GetAttribute(name string) (string, error) {
	return e.handle.GetAttribute(name)
}

func (e *playwrightElement) Fill(text string) error {
	return e.handle.Fill(text)
}

func (e *playwrightElement) Click() error {
	return e.handle.Click()
}

func (e *playwrightElement) IsVisible() (bool, error) {
	return e.handle.IsVisible()
}

func (e *playwrightElement) ScrollIntoView() error {
	return e.handle.ScrollIntoViewIfNeeded()
}

func (e *playwrightElement) QuerySelectorAll(selector string) ([]Element, error) {
	handles, err := e.handle.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	return wrapHandles(handles), nil
}

func (e *playwrightElement) Evaluate(script string, arg interface{}) (interface{}, error) {
	if arg == nil {
		return e.handle.Evaluate(script)
	}
	return e.handle.Evaluate(script, arg)
}
