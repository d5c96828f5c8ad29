package services

import (
	"errors"

	"github.com/dmitrijs2005/admissions/internal/client/client"
	"github.com/dmitrijs2005/admissions/internal/client/validate"
)

// Messages shared by several resources.
const (
	MsgUnreachable    = "Unable to connect to server. Please check your connection."
	MsgForbidden      = "You do not have permission to access this resource"
	MsgLoginRequired  = "Please log in to continue"
	MsgSessionExpired = "Your session has expired. Please log in again."
)

// messages describes how one operation reports its failures.
type messages struct {
	// fallback is used when nothing more specific applies.
	fallback string
	// byStatus overrides the fallback per HTTP status. An OAuth redirect
	// is looked up as 401.
	byStatus map[int]string
	// anyBody shows the backend's message for every unmapped status, not
	// only for 400.
	anyBody bool
}

// translate turns a client error into the DisplayError handed to
// controllers. nil stays nil.
func (m messages) translate(err error) error {
	if err == nil {
		return nil
	}

	status := client.StatusOf(err)
	if errors.Is(err, client.ErrAuthRedirect) {
		status = 401
	}
	if msg, ok := m.byStatus[status]; ok {
		return client.Display(msg, err)
	}
	if status == 0 {
		return client.Display(MsgUnreachable, err)
	}

	var apiErr *client.APIError
	if (status == 400 || m.anyBody && status > 0) && errors.As(err, &apiErr) {
		if msg := apiErr.Message(); msg != "" {
			return client.Display(msg, err)
		}
	}
	return client.Display(m.fallback, err)
}

// invalid wraps failed form rules so they leave the services layer as a
// DisplayError too. Field messages stay reachable with errors.As.
func invalid(err error) error {
	return &client.DisplayError{Message: err.Error(), Kind: client.ErrValidation, Err: err}
}

// check runs the form rules for v.
func check(v any) error {
	if err := validate.Struct(v); err != nil {
		return invalid(err)
	}
	return nil
}
