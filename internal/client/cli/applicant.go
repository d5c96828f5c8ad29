package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/admissions/internal/client/banner"
	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/wizard"
)

type field struct {
	label string
	value *string
}

// ask prompts for one value. An empty answer keeps current.
func (a *App) ask(label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

func (a *App) fill(fields ...field) error {
	for _, f := range fields {
		v, err := a.ask(f.label, *f.value)
		if err != nil {
			return err
		}
		*f.value = v
	}
	return nil
}

func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

// Steps prints the wizard steps with their completion marks.
func (a *App) Steps(context.Context, []string) error {
	a.showSteps()
	return nil
}

func (a *App) Next(ctx context.Context, _ []string) error {
	return a.moved(a.wizard.Next(ctx))
}

func (a *App) Prev(ctx context.Context, _ []string) error {
	return a.moved(a.wizard.Prev(ctx))
}

// moved shows the active step after a step change. A failure the wizard
// already posted as a banner is shown with the step.
func (a *App) moved(err error) error {
	if err != nil && !a.hasErrorBanner() {
		return err
	}
	a.showStep()
	return nil
}

func (a *App) hasErrorBanner() bool {
	for _, m := range a.wizard.Banners() {
		if m.Kind == banner.Error {
			return true
		}
	}
	return false
}

// Step jumps to the numbered step.
func (a *App) Step(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: step <1-4>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < int(wizard.StepPersonalInfo) || n > int(wizard.StepContactInfo) {
		return fmt.Errorf("step must be a number from 1 to 4")
	}
	return a.moved(a.wizard.Jump(ctx, wizard.StepID(n)))
}

// Show prints the active step.
func (a *App) Show(context.Context, []string) error {
	a.showStep()
	return nil
}

// Restart clears the wizard and loads it again from step 1.
func (a *App) Restart(ctx context.Context, _ []string) error {
	a.wizard.Reset()
	err := a.wizard.Start(ctx)
	a.showSteps()
	return err
}

// EditPersonalInfo prompts for the personal information form, starting from
// what is loaded, and saves it.
func (a *App) EditPersonalInfo(ctx context.Context, _ []string) error {
	var p models.PersonalInfo
	if cur := a.wizard.PersonalInfo(); cur != nil {
		p = *cur
	}
	gender, docType := string(p.Gender), string(p.IDDocumentType)

	err := a.fill(
		field{"Last name", &p.LastName},
		field{"First names", &p.FirstNames},
		field{"Gender (MALE, FEMALE, OTHER)", &gender},
		field{"Date of birth (YYYY-MM-DD)", &p.DateOfBirth},
		field{"Nationality", &p.Nationality},
		field{"ID document type (NATIONAL_ID_CARD, PASSPORT, DRIVERS_LICENSE, OTHER)", &docType},
		field{"ID number", &p.IDNumber},
	)
	if err != nil {
		return err
	}
	p.Gender = models.Gender(strings.ToUpper(gender))
	p.IDDocumentType = models.IDDocumentType(strings.ToUpper(docType))

	return a.outcome(a.wizard.Banner, wizard.SlotPersonalInfo, a.wizard.SavePersonalInfo(ctx, p))
}

// AddAcademicHistory prompts for a new academic history entry.
func (a *App) AddAcademicHistory(ctx context.Context, _ []string) error {
	return a.editAcademic(ctx, models.AcademicHistory{})
}

// EditAcademicHistory prompts for changes to an existing entry.
func (a *App) EditAcademicHistory(ctx context.Context, args []string) error {
	id, err := parseID(args, "editacademic <id>")
	if err != nil {
		return err
	}
	for _, h := range a.wizard.AcademicHistory() {
		if h.ID == id {
			return a.editAcademic(ctx, h)
		}
	}
	return fmt.Errorf("academic history %d is not loaded; open step 3 first", id)
}

func (a *App) editAcademic(ctx context.Context, h models.AcademicHistory) error {
	end := deref(h.EndDate)
	err := a.fill(
		field{"Institution", &h.InstitutionName},
		field{"Specialization", &h.Specialization},
		field{"Start date (YYYY-MM-DD)", &h.StartDate},
		field{"End date (YYYY-MM-DD, '-' for none)", &end},
	)
	if err != nil {
		return err
	}
	h.EndDate = nil
	if end != "" && end != "-" {
		h.EndDate = &end
	}

	return a.outcome(a.wizard.Banner, wizard.SlotAcademicHistory, a.wizard.SaveAcademicHistory(ctx, h))
}

func (a *App) DeleteAcademicHistory(ctx context.Context, args []string) error {
	id, err := parseID(args, "rmacademic <id>")
	if err != nil {
		return err
	}
	return a.outcome(a.wizard.Banner, wizard.SlotAcademicHistory, a.wizard.DeleteAcademicHistory(ctx, id))
}

// EditContactInfo prompts for the contact information form and saves it.
func (a *App) EditContactInfo(ctx context.Context, _ []string) error {
	var c models.ContactInfo
	if cur := a.wizard.ContactInfo(); cur != nil {
		c = *cur
	}

	err := a.fill(
		field{"Phone number", &c.PhoneNumber},
		field{"Street", &c.Address.Street},
		field{"Street (line 2)", &c.Address.Street2},
		field{"City", &c.Address.City},
		field{"Postal code", &c.Address.PostalCode},
		field{"Country", &c.Address.Country},
		field{"Emergency contact name", &c.EmergencyContact.Name},
		field{"Emergency contact relationship", &c.EmergencyContact.Relationship},
		field{"Emergency contact phone", &c.EmergencyContact.Phone},
	)
	if err != nil {
		return err
	}

	return a.outcome(a.wizard.Banner, wizard.SlotContactInfo, a.wizard.SaveContactInfo(ctx, c))
}
