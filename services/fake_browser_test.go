package services

import (
	"context"
	"errors"
	"time"
)

var errFakeDriver = errors.New("fake driver failure")

type fakeElement struct {
	attrs    map[string]string
	children map[string][]*fakeElement
	evals    map[string]interface{}
	hidden   bool

	failFill   bool
	failClick  bool
	failScript bool

	value         string
	clicks        int
	scriptedFills int
	scriptedClick int
}

func newFakeElement(attrs map[string]string) *fakeElement {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &fakeElement{
		attrs:    attrs,
		children: map[string][]*fakeElement{},
		evals:    map[string]interface{}{},
	}
}

func fakeOptions(n int) []*fakeElement {
	out := make([]*fakeElement, n)
	for i := range out {
		out[i] = newFakeElement(nil)
	}
	return out
}

func clickedIndices(options []*fakeElement) []int {
	var idx []int
	for i, o := range options {
		if o.clicks+o.scriptedClick > 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

func (e *fakeElement) GetAttribute(name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) Fill(text string) error {
	if e.failFill {
		return errFakeDriver
	}
	e.value = text
	return nil
}

func (e *fakeElement) Click() error {
	if e.failClick {
		return errFakeDriver
	}
	e.clicks++
	return nil
}

func (e *fakeElement) IsVisible() (bool, error) { return !e.hidden, nil }

func (e *fakeElement) ScrollIntoView() error { return nil }

func (e *fakeElement) QuerySelectorAll(selector string) ([]Element, error) {
	return toElements(e.children[selector]), nil
}

func (e *fakeElement) Evaluate(script string, arg interface{}) (interface{}, error) {
	switch script {
	case scriptedFillScript:
		if e.failScript {
			return nil, errFakeDriver
		}
		e.value, _ = arg.(string)
		e.scriptedFills++
		return nil, nil
	case scriptedClickScript:
		if e.failScript {
			return nil, errFakeDriver
		}
		e.scriptedClick++
		return nil, nil
	}
	if v, ok := e.evals[script]; ok {
		return v, nil
	}
	return nil, nil
}

type fakePage struct {
	elements map[string][]*fakeElement
	queryErr map[string]error

	url         string
	keys        []string
	keyErr      error
	waits       []time.Duration
	closed      bool
	screenshots int
}

func newFakePage() *fakePage {
	return &fakePage{
		elements: map[string][]*fakeElement{},
		queryErr: map[string]error{},
	}
}

func (p *fakePage) QuerySelector(selector string) (Element, error) {
	if err := p.queryErr[selector]; err != nil {
		return nil, err
	}
	if els := p.elements[selector]; len(els) > 0 {
		return els[0], nil
	}
	return nil, nil
}

func (p *fakePage) QuerySelectorAll(selector string) ([]Element, error) {
	if err := p.queryErr[selector]; err != nil {
		return nil, err
	}
	return toElements(p.elements[selector]), nil
}

func (p *fakePage) PressKey(key string) error {
	if p.keyErr != nil {
		return p.keyErr
	}
	p.keys = append(p.keys, key)
	return nil
}

func (p *fakePage) Wait(d time.Duration) { p.waits = append(p.waits, d) }

func (p *fakePage) Title() (string, error) { return "Survey", nil }

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) Screenshot() ([]byte, error) {
	p.screenshots++
	return []byte("png"), nil
}

func (p *fakePage) Close() error {
	p.closed = true
	return nil
}

type fakeBrowser struct {
	newPage func() *fakePage
	openErr error

	pages  []*fakePage
	urls   []string
	closed bool
}

func (b *fakeBrowser) OpenPage(_ context.Context, url string, _ time.Duration) (Page, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	page := b.newPage()
	b.pages = append(b.pages, page)
	b.urls = append(b.urls, url)
	return page, nil
}

func (b *fakeBrowser) Close() error {
	b.closed = true
	return nil
}

// factory counts how many browsers were started.
func (b *fakeBrowser) factory(starts *int) BrowserFactory {
	return func(context.Context) (Browser, error) {
		*starts++
		return b, nil
	}
}

func toElements(in []*fakeElement) []Element {
	out := make([]Element, len(in))
	for i, e := range in {
		out[i] = e
	}
	return out
}
