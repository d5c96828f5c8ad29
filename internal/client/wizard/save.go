package wizard

import (
	"context"

	"github.com/dmitrijs2005/admissions/internal/client/models"
)

// Saves validate first and send nothing when a rule fails. Success marks
// the step completed and replaces any load still in flight.

func (c *Controller) SavePersonalInfo(ctx context.Context, info models.PersonalInfo) error {
	c.board.Clear(SlotPersonalInfo)
	saved, err := c.svc.PersonalInfo.Save(ctx, info)
	if err != nil {
		c.board.Error(SlotPersonalInfo, err.Error())
		return err
	}
	c.seq[StepPersonalInfo].Invalidate()

	c.mu.Lock()
	c.personal = saved
	c.markCompleted(StepPersonalInfo)
	c.mu.Unlock()

	c.board.Success(SlotPersonalInfo, "Personal information saved successfully!")
	return nil
}

// SaveAcademicHistory adds h, or updates it when h.ID is set, then reloads
// the list.
func (c *Controller) SaveAcademicHistory(ctx context.Context, h models.AcademicHistory) error {
	c.board.Clear(SlotAcademicHistory)

	var (
		msg string
		err error
	)
	if h.ID != 0 {
		_, err = c.svc.AcademicHistory.Update(ctx, h.ID, h)
		msg = "Academic history updated successfully!"
	} else {
		_, err = c.svc.AcademicHistory.Add(ctx, h)
		msg = "Academic history added successfully!"
	}
	if err != nil {
		c.board.Error(SlotAcademicHistory, err.Error())
		return err
	}

	c.mu.Lock()
	c.markCompleted(StepAcademicHistory)
	c.mu.Unlock()

	c.board.Success(SlotAcademicHistory, msg)
	return c.LoadAcademicHistory(ctx)
}

// DeleteAcademicHistory asks for confirmation first. Declining is not an
// error.
func (c *Controller) DeleteAcademicHistory(ctx context.Context, id int64) error {
	ok, err := c.confirm.Confirm(ctx, PromptDeleteAcademics)
	if err != nil || !ok {
		return err
	}
	c.board.Clear(SlotAcademicHistory)

	if err := c.svc.AcademicHistory.Delete(ctx, id); err != nil {
		c.board.Error(SlotAcademicHistory, err.Error())
		return err
	}
	c.board.Success(SlotAcademicHistory, "Academic history deleted successfully!")
	return c.LoadAcademicHistory(ctx)
}

func (c *Controller) SaveContactInfo(ctx context.Context, info models.ContactInfo) error {
	c.board.Clear(SlotContactInfo)
	saved, err := c.svc.ContactInfo.Save(ctx, info)
	if err != nil {
		c.board.Error(SlotContactInfo, err.Error())
		return err
	}
	c.seq[StepContactInfo].Invalidate()

	c.mu.Lock()
	c.contact = saved
	c.markCompleted(StepContactInfo)
	c.mu.Unlock()

	c.board.Success(SlotContactInfo, "Contact information saved successfully!")
	return nil
}
