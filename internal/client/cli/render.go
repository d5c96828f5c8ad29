package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/admissions/internal/client/banner"
	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/wizard"
)

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *App) printBanner(m banner.Message) {
	prefix := "OK:"
	if m.Kind == banner.Error {
		prefix = "Error:"
	}
	fmt.Fprintln(a.out, prefix, m.Text)
}

// outcome shows what a controller posted to slot for the action that
// returned err. An error that produced an error banner is reported only
// through the banner.
func (a *App) outcome(get func(string) (banner.Message, bool), slot string, err error) error {
	m, ok := get(slot)
	if err != nil {
		if ok && m.Kind == banner.Error {
			a.printBanner(m)
			return nil
		}
		return err
	}
	if ok {
		a.printBanner(m)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (a *App) showSteps() {
	for _, s := range a.wizard.Steps() {
		mark := " "
		if s.Completed {
			mark = "x"
		}
		cursor := "  "
		if s.Active {
			cursor = "> "
		}
		fmt.Fprintf(a.out, "%s[%s] %d. %s\n", cursor, mark, s.ID, s.Name)
	}
}

// showStep prints the data of the active step.
func (a *App) showStep() {
	step := a.wizard.Current()
	fmt.Fprintf(a.out, "Step %d: %s\n", step, step)
	switch step {
	case wizard.StepPersonalInfo:
		a.showPersonalInfo(a.wizard.PersonalInfo())
	case wizard.StepDocuments:
		a.showDocuments(a.wizard.Documents())
		if sel := a.wizard.Selection(); sel != nil {
			fmt.Fprintf(a.out, "Selected: %s (%s, %s, %s)\n", sel.Filename,
				models.DocumentTypeLabel(sel.Type), sel.ContentType, models.FormatFileSize(sel.Size))
		}
	case wizard.StepAcademicHistory:
		a.showAcademicHistory(a.wizard.AcademicHistory())
	case wizard.StepContactInfo:
		a.showContactInfo(a.wizard.ContactInfo())
	}
	for _, m := range a.wizard.Banners() {
		a.printBanner(m)
	}
}

func (a *App) showPersonalInfo(p *models.PersonalInfo) {
	if p == nil {
		fmt.Fprintln(a.out, "No personal information yet")
		return
	}
	tw := a.table()
	fmt.Fprintf(tw, "Last name:\t%s\n", p.LastName)
	fmt.Fprintf(tw, "First names:\t%s\n", p.FirstNames)
	fmt.Fprintf(tw, "Gender:\t%s\n", p.Gender)
	fmt.Fprintf(tw, "Date of birth:\t%s\n", p.DateOfBirth)
	fmt.Fprintf(tw, "Nationality:\t%s\n", p.Nationality)
	fmt.Fprintf(tw, "ID document:\t%s %s\n", p.IDDocumentType, p.IDNumber)
	tw.Flush()
}

func (a *App) showDocuments(docs []models.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(a.out, "No documents uploaded")
		return
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tTYPE\tFILE\tSIZE\tSTATUS\tUPLOADED\tNOTES")
	for _, d := range docs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", d.ID, models.DocumentTypeLabel(d.DocumentType),
			d.OriginalFilename, models.FormatFileSize(d.FileSize), d.Status, d.UploadedAt, orDash(deref(d.ValidationNotes)))
	}
	tw.Flush()
}

func (a *App) showDocumentTypes() {
	tw := a.table()
	fmt.Fprintln(tw, "TYPE\tNAME\tREQUIREMENTS")
	for _, p := range models.DocumentPolicies {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Type, p.Label, p.Description)
	}
	tw.Flush()
}

func (a *App) showAcademicHistory(items []models.AcademicHistory) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No academic history yet")
		return
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tINSTITUTION\tSPECIALIZATION\tFROM\tTO")
	for _, h := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", h.ID, h.InstitutionName, h.Specialization, h.StartDate, orDash(deref(h.EndDate)))
	}
	tw.Flush()
}

func (a *App) showContactInfo(c *models.ContactInfo) {
	if c == nil {
		fmt.Fprintln(a.out, "No contact information yet")
		return
	}
	tw := a.table()
	if c.Email != "" {
		fmt.Fprintf(tw, "Email:\t%s\n", c.Email)
	}
	fmt.Fprintf(tw, "Phone:\t%s\n", c.PhoneNumber)
	street := c.Address.Street
	if c.Address.Street2 != "" {
		street += ", " + c.Address.Street2
	}
	fmt.Fprintf(tw, "Address:\t%s, %s %s, %s\n", street, c.Address.PostalCode, c.Address.City, c.Address.Country)
	fmt.Fprintf(tw, "Emergency contact:\t%s (%s) %s\n", c.EmergencyContact.Name, c.EmergencyContact.Relationship, c.EmergencyContact.Phone)
	tw.Flush()
}

func (a *App) showNotifications() {
	items := a.inbox.Items()
	fmt.Fprintf(a.out, "Unread: %d\n", a.inbox.Unread())
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No notifications")
		return
	}
	tw := a.table()
	for _, n := range items {
		mark := "*"
		if n.Read {
			mark = " "
		}
		fmt.Fprintf(tw, "%s %d\t%s\t%s\t%s\n", mark, n.ID, n.Type, n.Title, n.Message)
	}
	tw.Flush()
}

func (a *App) showUsers() {
	if err := a.listing.Err(); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	users := a.listing.Users()
	page, pages, total := a.listing.Page()
	field, dir := a.listing.Sort()

	tw := a.table()
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLES\tACCOUNT\tAPPLICATION\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s %s\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.FirstName, u.LastName, u.Email,
			strings.Join(u.Roles, ","), models.AccountStatus(u.Enabled, u.Locked), orDash(u.ApplicationStatus), u.CreatedAt)
	}
	tw.Flush()

	window := make([]string, 0, 5)
	for _, p := range a.listing.Pages() {
		if p == page {
			window = append(window, fmt.Sprintf("[%d]", p+1))
		} else {
			window = append(window, fmt.Sprint(p+1))
		}
	}
	fmt.Fprintf(a.out, "Page %d of %d (%d users, sorted by %s %s)  %s\n",
		page+1, max(pages, 1), total, field, dir, strings.Join(window, " "))
}

func (a *App) showDashboard() {
	if err := a.dashboard.Err(); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
	}
	st := a.dashboard.Statistics()
	count := func(v *int64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprint(*v)
	}
	rate := "-"
	if st.CompletionRate != nil {
		rate = fmt.Sprintf("%.1f%%", *st.CompletionRate)
	}

	tw := a.table()
	fmt.Fprintf(tw, "Total applications:\t%s\n", count(st.TotalApplications))
	fmt.Fprintf(tw, "Pending:\t%s\n", count(st.Pending))
	fmt.Fprintf(tw, "Approved:\t%s\n", count(st.Approved))
	fmt.Fprintf(tw, "Rejected:\t%s\n", count(st.Rejected))
	fmt.Fprintf(tw, "Completion rate:\t%s\n", rate)
	tw.Flush()

	recent := a.dashboard.Recent()
	if len(recent) == 0 {
		return
	}
	fmt.Fprintln(a.out, "Recent applications:")
	tw = a.table()
	for _, u := range recent {
		fmt.Fprintf(tw, "%d\t%s %s\t%s\t%s\n", u.ID, u.FirstName, u.LastName, u.Email, orDash(u.ApplicationStatus))
	}
	tw.Flush()
}

func (a *App) showApplication() {
	if err := a.review.Err(); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	d := a.review.Detail()
	if d == nil {
		return
	}
	u := d.UserSummary
	fmt.Fprintf(a.out, "%s %s <%s>  application: %s  account: %s\n", u.FirstName, u.LastName, u.Email,
		orDash(u.ApplicationStatus), models.AccountStatus(u.Enabled, u.Locked))

	fmt.Fprintln(a.out, "\nPersonal information")
	a.showPersonalInfo(d.PersonalInfo)
	fmt.Fprintln(a.out, "\nContact information")
	a.showContactInfo(d.ContactInfo)
	fmt.Fprintln(a.out, "\nAcademic history")
	a.showAcademicHistory(d.AcademicHistory)

	fmt.Fprintln(a.out, "\nDocuments")
	if len(d.Documents) == 0 {
		fmt.Fprintln(a.out, "No documents uploaded")
		return
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tTYPE\tFILE\tSIZE\tSTATUS\tNOTES")
	for _, doc := range d.Documents {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", doc.ID,
			models.DocumentTypeLabel(models.DocumentType(doc.DocumentType)), doc.OriginalFilename,
			models.FormatFileSize(doc.FileSize), doc.Status, orDash(deref(doc.ValidationNotes)))
	}
	tw.Flush()
}
