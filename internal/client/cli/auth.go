package cli

import (
	"context"
	"fmt"

	"github.com/effyhq/effy-cli/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts the user for credentials and tries to authenticate. A failed
// attempt has already been reported by the request pipeline, so the handler
// only propagates the error to keep the prompt state honest.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	_, err = a.authService.Login(ctx, email, password)
	return err
}

// Register prompts the user for account details and attempts to create a
// new account. On success the session is established immediately; the
// backend returns the same token envelope as login.
func (a *App) Register(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	organization, err := getSimpleText(a.reader, "Enter organization", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	_, err = a.authService.Register(ctx, models.Registration{
		FullName:     fullName,
		Email:        email,
		Organization: organization,
		Password:     password,
	})
	return err
}

// Logout tears the session down locally.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout()
	return nil
}

// WhoAmI prints the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	user := a.authService.CurrentUser()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	fmt.Fprintf(a.out, "%s <%s>\n", user.FullName, user.Email)
	if user.Organization != "" {
		fmt.Fprintf(a.out, "Organization: %s\n", user.Organization)
	}
	if user.Role != "" {
		fmt.Fprintf(a.out, "Role: %s\n", user.Role)
	}
	return nil
}

// Profile shows the current profile and prompts for new values. An empty
// answer keeps the existing value; when nothing changes no request is sent.
func (a *App) Profile(ctx context.Context) error {
	user := a.authService.CurrentUser()
	if user == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	fmt.Fprintf(a.out, "Full name: %s\nOrganization: %s\n", user.FullName, user.Organization)

	fullName, err := getSimpleText(a.reader, "New full name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	organization, err := getSimpleText(a.reader, "New organization (empty to keep)", a.out)
	if err != nil {
		return err
	}

	var fields models.ProfileUpdate
	if fullName != "" {
		fields.FullName = &fullName
	}
	if organization != "" {
		fields.Organization = &organization
	}
	if fields.FullName == nil && fields.Organization == nil {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}

	_, err = a.authService.UpdateProfile(ctx, fields)
	return err
}
