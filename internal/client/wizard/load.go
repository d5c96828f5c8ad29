package wizard

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/reqseq"
)

// loadFailed posts err to slot unless it only says there is no data yet.
// It returns nil in that case.
func (c *Controller) loadFailed(ctx context.Context, slot string, err error) error {
	if errors.Is(err, client.ErrNotFound) {
		c.log.Debug(ctx, "nothing saved yet", "slot", slot)
		return nil
	}
	c.log.Warn(ctx, "load failed", "slot", slot, "error", err)
	c.board.Error(slot, err.Error())
	return err
}

// stale reports and logs a response that lost to a newer load.
func (c *Controller) stale(ctx context.Context, step StepID, t reqseq.Ticket) bool {
	if c.seq[step].Current(t) {
		return false
	}
	c.log.Debug(ctx, "dropping stale response", "step", step.String())
	return true
}

func (c *Controller) LoadPersonalInfo(ctx context.Context) error {
	c.board.ClearError(SlotPersonalInfo)
	t := c.seq[StepPersonalInfo].Next()
	info, err := c.svc.PersonalInfo.Get(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(ctx, StepPersonalInfo, t) {
		return nil
	}
	if err != nil {
		return c.loadFailed(ctx, SlotPersonalInfo, err)
	}
	c.personal = info
	if info != nil {
		c.markCompleted(StepPersonalInfo)
	}
	return nil
}

func (c *Controller) LoadDocuments(ctx context.Context) error {
	c.board.ClearError(SlotDocuments)
	t := c.seq[StepDocuments].Next()
	docs, err := c.svc.Documents.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(ctx, StepDocuments, t) {
		return nil
	}
	if err != nil {
		return c.loadFailed(ctx, SlotDocuments, err)
	}
	c.docs = docs
	if len(docs) > 0 {
		c.markCompleted(StepDocuments)
	}
	return nil
}

func (c *Controller) LoadAcademicHistory(ctx context.Context) error {
	c.board.ClearError(SlotAcademicHistory)
	t := c.seq[StepAcademicHistory].Next()
	list, err := c.svc.AcademicHistory.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(ctx, StepAcademicHistory, t) {
		return nil
	}
	if err != nil {
		return c.loadFailed(ctx, SlotAcademicHistory, err)
	}
	c.academic = list
	if len(list) > 0 {
		c.markCompleted(StepAcademicHistory)
	}
	return nil
}

func (c *Controller) LoadContactInfo(ctx context.Context) error {
	c.board.ClearError(SlotContactInfo)
	t := c.seq[StepContactInfo].Next()
	info, err := c.svc.ContactInfo.Get(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stale(ctx, StepContactInfo, t) {
		return nil
	}
	if err != nil {
		return c.loadFailed(ctx, SlotContactInfo, err)
	}
	c.contact = info
	if info != nil {
		c.markCompleted(StepContactInfo)
	}
	return nil
}
