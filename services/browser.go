package services

import (
	"context"
	"time"
)

// Element is a handle to one DOM node.
type Element interface {
	GetAttribute(name string) (string, error)
	Fill(text string) error
	Click() error
	IsVisible() (bool, error)
	ScrollIntoView() error
	QuerySelectorAll(selector string) ([]Element, error)
	// Evaluate runs a function whose first parameter is this element.
	Evaluate(script string, arg interface{}) (interface{}, error)
}

// Page is one open form page.
type Page interface {
	QuerySelector(selector string) (Element, error)
	QuerySelectorAll(selector string) ([]Element, error)
	PressKey(key string) error
	Wait(d time.Duration)
	Title() (string, error)
	URL() string
	Screenshot() ([]byte, error)
	Close() error
}

// Browser opens pages; each page lives in its own context.
type Browser interface {
	OpenPage(ctx context.Context, url string, timeout time.Duration) (Page, error)
	Close() error
}

// BrowserFactory starts a browser for one run.
type BrowserFactory func(ctx context.Context) (Browser, error)
