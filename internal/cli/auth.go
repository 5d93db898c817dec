package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/medxscan/internal/common"
	"github.com/dmitrijs2005/medxscan/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, password and name and creates a local
// account. Application-level failures (duplicate email) are printed, not
// returned, so the REPL keeps going.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}

	user, err := a.auth.Register(ctx, email, password, name)
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		return nil
	}

	a.user = user
	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Name)
	return nil
}

// Login prompts for credentials and authenticates against the local store.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %v\n", err)
		return nil
	}

	a.user = user
	fmt.Fprintf(a.out, "Welcome back, %s!\n", user.Name)
	return nil
}

// Logout clears the persisted session and the in-memory user.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.user = nil
	a.transcript = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Profile shows the current profile and optionally updates name/age/gender.
// Empty answers keep the current values.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return nil
	}

	u := a.user
	fmt.Fprintf(a.out, "Email:  %s\nName:   %s\n", u.Email, u.Name)
	if u.Age > 0 {
		fmt.Fprintf(a.out, "Age:    %d\n", u.Age)
	}
	if u.Gender != "" {
		fmt.Fprintf(a.out, "Gender: %s\n", u.Gender)
	}

	var upd models.ProfileUpdate

	if name, err := getSimpleText(a.reader, "New name (empty to keep)", a.out); err != nil {
		return err
	} else if name != "" {
		upd.Name = &name
	}

	if ageText, err := getSimpleText(a.reader, "Age (empty to keep)", a.out); err != nil {
		return err
	} else if ageText != "" {
		age, err := strconv.Atoi(ageText)
		if err != nil || age <= 0 {
			fmt.Fprintln(a.out, "Age must be a positive number")
			return nil
		}
		upd.Age = &age
	}

	if gender, err := getSimpleText(a.reader, "Gender (empty to keep)", a.out); err != nil {
		return err
	} else if gender != "" {
		upd.Gender = &gender
	}

	if upd.Name == nil && upd.Age == nil && upd.Gender == nil {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	user, err := a.auth.UpdateProfile(ctx, u.ID, upd)
	if err != nil {
		fmt.Fprintf(a.out, "Update failed: %v\n", err)
		return nil
	}

	a.user = user
	fmt.Fprintln(a.out, "Profile updated")
	return nil
}
