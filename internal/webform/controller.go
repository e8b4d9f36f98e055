// Package webform drives the contact form in the browser: it reads the
// visitor's input, validates it with the same rules as the endpoint, posts it
// and renders the outcome. DOM access sits behind View so the controller runs
// unchanged under js/wasm and in tests.
package webform

import (
	"context"
	"sync"
	"time"

	"github.com/linearmarketingsolutions/website/internal/contact"
)

// DefaultHideDelay is how long a success message stays visible.
const DefaultHideDelay = 5000 * time.Millisecond

// MessageKind selects the styling of the feedback element.
type MessageKind int

const (
	KindSuccess MessageKind = iota
	KindError
)

func (k MessageKind) String() string {
	if k == KindSuccess {
		return "success"
	}
	return "error"
}

// Class returns the CSS class list for the feedback element.
func (k MessageKind) Class() string {
	return "form-message " + k.String()
}

// View is the part of the page the controller manipulates.
type View interface {
	Values() contact.Submission
	// SetBusy disables the submit button and swaps its label for the loader.
	SetBusy(busy bool)
	ShowMessage(text string, kind MessageKind)
	HideMessage()
	Reset()
}

// Transport delivers a submission to the endpoint and returns its decoded
// reply. Any error means no usable reply was received.
type Transport interface {
	Post(ctx context.Context, sub contact.Submission) (contact.Response, error)
}

// AfterFunc schedules f after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Outcome reports how a Submit call ended.
type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeDelivered
	OutcomeRejected
	OutcomeUnreachable
	// OutcomeBusy means a previous submission is still in flight.
	OutcomeBusy
	// OutcomePending is returned by Begin when the form is ready to post.
	OutcomePending
)

// Option configures a Controller.
type Option func(*Controller)

// WithHideDelay overrides how long success messages stay visible.
func WithHideDelay(d time.Duration) Option {
	return func(c *Controller) { c.hideDelay = d }
}

// WithAfterFunc replaces the timer used for auto-hiding messages.
func WithAfterFunc(fn AfterFunc) Option {
	return func(c *Controller) {
		if fn != nil {
			c.afterFunc = fn
		}
	}
}

// Controller runs the submit flow of the contact form.
type Controller struct {
	view      View
	transport Transport
	hideDelay time.Duration
	afterFunc AfterFunc

	mu       sync.Mutex
	stopHide func() bool
	inFlight bool
}

// NewController binds a view to a transport.
func NewController(view View, transport Transport, opts ...Option) *Controller {
	c := &Controller{
		view:      view,
		transport: transport,
		hideDelay: DefaultHideDelay,
		afterFunc: realAfterFunc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit validates the form and, when valid, posts it exactly once.
func (c *Controller) Submit(ctx context.Context) Outcome {
	sub, out := c.Begin()
	if out != OutcomePending {
		return out
	}
	return c.Finish(ctx, sub)
}

// Begin is the synchronous half of Submit. It validates the form and, when
// it returns OutcomePending, has already put the view in its busy state; the
// caller must then call Finish exactly once. Begin rejects a second
// submission while one is in flight.
func (c *Controller) Begin() (contact.Submission, Outcome) {
	c.mu.Lock()
	busy := c.inFlight
	c.mu.Unlock()
	if busy {
		return contact.Submission{}, OutcomeBusy
	}

	sub := c.view.Values()
	sub.Normalize()

	if err := sub.Validate(); err != nil {
		c.show(contact.UserMessage(err), KindError)
		return contact.Submission{}, OutcomeInvalid
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return contact.Submission{}, OutcomeBusy
	}
	c.inFlight = true
	c.mu.Unlock()

	c.view.SetBusy(true)
	c.cancelHide()
	c.view.HideMessage()
	return sub, OutcomePending
}

// Finish posts a submission accepted by Begin and renders the reply.
func (c *Controller) Finish(ctx context.Context, sub contact.Submission) Outcome {
	defer func() {
		c.view.SetBusy(false)
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	resp, err := c.transport.Post(ctx, sub)
	if err != nil {
		c.show(contact.MsgClientTransport, KindError)
		return OutcomeUnreachable
	}

	if resp.Success {
		c.show(fallback(resp.Message, contact.MsgClientSuccess), KindSuccess)
		c.view.Reset()
		return OutcomeDelivered
	}

	c.show(fallback(resp.Error, contact.MsgClientFailure), KindError)
	return OutcomeRejected
}

// Close cancels a pending auto-hide.
func (c *Controller) Close() {
	c.cancelHide()
}

func (c *Controller) show(text string, kind MessageKind) {
	c.cancelHide()
	c.view.ShowMessage(text, kind)
	if kind != KindSuccess || c.hideDelay <= 0 {
		return
	}

	c.mu.Lock()
	c.stopHide = c.afterFunc(c.hideDelay, c.view.HideMessage)
	c.mu.Unlock()
}

func (c *Controller) cancelHide() {
	c.mu.Lock()
	stop := c.stopHide
	c.stopHide = nil
	c.mu.Unlock()
	if stop != nil {
		stop()
	}
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
