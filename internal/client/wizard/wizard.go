// Package wizard drives the four-step applicant flow: personal information,
// documents, academic history and contact information.
//
// Exactly one step is active at a time. A step becomes completed when its
// resource loads with data or is saved, and stays completed until Reset.
// Steps may be visited in any order; the only nudge is a confirmation when
// leaving the documents step with a file selected but not uploaded.
package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/admissions/internal/client/banner"
	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/reqseq"
	"github.com/dmitrijs2005/admissions/internal/client/services"
	"github.com/dmitrijs2005/admissions/internal/clock"
	"github.com/dmitrijs2005/admissions/internal/logging"
	"go.uber.org/multierr"
)

type StepID int

const (
	StepPersonalInfo StepID = iota + 1
	StepDocuments
	StepAcademicHistory
	StepContactInfo
)

const stepCount = int(StepContactInfo)

var stepNames = [...]string{
	StepPersonalInfo:    "Personal Information",
	StepDocuments:       "Documents",
	StepAcademicHistory: "Academic History",
	StepContactInfo:     "Contact Information",
}

func (s StepID) String() string {
	if s < StepPersonalInfo || s > StepContactInfo {
		return "Unknown"
	}
	return stepNames[s]
}

// Banner slots, one per step.
const (
	SlotPersonalInfo    = "personal-info"
	SlotDocuments       = "documents"
	SlotAcademicHistory = "academic-history"
	SlotContactInfo     = "contact-info"
)

// Confirmation prompts.
const (
	PromptPendingUpload   = "You have a selected document that has not been uploaded. Would you like to upload it before proceeding?"
	PromptDeleteDocument  = "Are you sure you want to delete this document?"
	PromptDeleteAcademics = "Are you sure you want to delete this academic history?"
)

var ErrNoConfirmer = errors.New("wizard: confirmer is required")

type Step struct {
	ID        StepID
	Name      string
	Completed bool
	Active    bool
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Services are the data-access services the wizard loads and saves through.
type Services struct {
	PersonalInfo    services.PersonalInfoService
	Documents       services.DocumentService
	AcademicHistory services.AcademicHistoryService
	ContactInfo     services.ContactInfoService
}

type Config struct {
	Services   Services
	Confirmer  Confirmer
	Clock      clock.Clock
	Logger     logging.Logger
	SuccessTTL time.Duration
	ErrorTTL   time.Duration
}

// Controller is safe for concurrent use. Network calls run without the
// lock held; results are applied only if no newer load of the same
// resource was started meanwhile.
type Controller struct {
	svc     Services
	confirm Confirmer
	log     logging.Logger
	board   *banner.Board

	seq [stepCount + 1]reqseq.Sequencer

	mu        sync.Mutex
	current   StepID
	completed [stepCount + 1]bool
	personal  *models.PersonalInfo
	docs      []models.Document
	academic  []models.AcademicHistory
	contact   *models.ContactInfo
	selection *Selection
}

func New(cfg Config) (*Controller, error) {
	if cfg.Confirmer == nil {
		return nil, ErrNoConfirmer
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	return &Controller{
		svc:     cfg.Services,
		confirm: cfg.Confirmer,
		log:     cfg.Logger.With("component", "wizard"),
		board:   banner.New(cfg.Clock, cfg.SuccessTTL, cfg.ErrorTTL),
		current: StepPersonalInfo,
	}, nil
}

// Start activates step 1 and loads personal information and documents.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	c.current = StepPersonalInfo
	c.mu.Unlock()

	return multierr.Combine(c.LoadPersonalInfo(ctx), c.LoadDocuments(ctx))
}

// Steps returns a snapshot of the four steps in order.
func (c *Controller) Steps() []Step {
	c.mu.Lock()
	defer c.mu.Unlock()

	steps := make([]Step, 0, stepCount)
	for id := StepPersonalInfo; id <= StepContactInfo; id++ {
		steps = append(steps, Step{ID: id, Name: id.String(), Completed: c.completed[id], Active: id == c.current})
	}
	return steps
}

func (c *Controller) Current() StepID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Next moves one step forward. On the last step it does nothing.
func (c *Controller) Next(ctx context.Context) error {
	return c.Jump(ctx, c.Current()+1)
}

// Prev moves one step back. On the first step it does nothing.
func (c *Controller) Prev(ctx context.Context) error {
	return c.Jump(ctx, c.Current()-1)
}

// Jump activates step and loads its resource. Out-of-range steps are
// ignored. Moving forward from the documents step with a pending selection
// asks whether to upload it first; the move happens only once the upload
// succeeds, or right away if the user declines.
func (c *Controller) Jump(ctx context.Context, step StepID) error {
	if step < StepPersonalInfo || step > StepContactInfo {
		return nil
	}

	c.mu.Lock()
	from := c.current
	pending := c.selection != nil
	c.mu.Unlock()

	if from == step {
		return nil
	}
	if from == StepDocuments && step > from && pending {
		ok, err := c.confirm.Confirm(ctx, PromptPendingUpload)
		if err != nil {
			return err
		}
		if ok {
			if err := c.UploadSelected(ctx); err != nil {
				return err
			}
		}
	}

	c.mu.Lock()
	c.current = step
	c.mu.Unlock()
	c.log.Debug(ctx, "step changed", "from", from.String(), "to", step.String())

	return c.load(ctx, step)
}

func (c *Controller) load(ctx context.Context, step StepID) error {
	switch step {
	case StepPersonalInfo:
		return c.LoadPersonalInfo(ctx)
	case StepDocuments:
		return c.LoadDocuments(ctx)
	case StepAcademicHistory:
		return c.LoadAcademicHistory(ctx)
	case StepContactInfo:
		return c.LoadContactInfo(ctx)
	}
	return nil
}

// Reset returns the wizard to step 1 with nothing loaded or completed.
// Loads in flight are discarded.
func (c *Controller) Reset() {
	for i := range c.seq {
		c.seq[i].Invalidate()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = StepPersonalInfo
	c.completed = [stepCount + 1]bool{}
	c.personal = nil
	c.docs = nil
	c.academic = nil
	c.contact = nil
	c.selection = nil
}

// Close stops banner timers and discards loads in flight.
func (c *Controller) Close() {
	for i := range c.seq {
		c.seq[i].Invalidate()
	}
	c.board.Close()
}

// Banners returns the visible messages.
func (c *Controller) Banners() []banner.Message {
	return c.board.Active()
}

func (c *Controller) Banner(slot string) (banner.Message, bool) {
	return c.board.Get(slot)
}

func (c *Controller) PersonalInfo() *models.PersonalInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.personal == nil {
		return nil
	}
	p := *c.personal
	return &p
}

func (c *Controller) Documents() []models.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Document(nil), c.docs...)
}

func (c *Controller) AcademicHistory() []models.AcademicHistory {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.AcademicHistory(nil), c.academic...)
}

func (c *Controller) ContactInfo() *models.ContactInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.contact == nil {
		return nil
	}
	ci := *c.contact
	return &ci
}

// markCompleted must be called with c.mu held.
func (c *Controller) markCompleted(step StepID) {
	c.completed[step] = true
}
