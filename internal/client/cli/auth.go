package cli

import (
	"context"
	"fmt"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. On success the app
// resumes the navigation captured by the guard before the login detour.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, username, string(password)); err != nil {
		fmt.Printf("Login failed: %s\n", err.Error())
		return err
	}

	fmt.Println("Login successful")
	a.resume()
	return nil
}

// Logout ends the session. Local state is cleared even when the backend
// call fails, so this never leaves the user half logged in.
func (a *App) Logout(ctx context.Context) {
	_ = a.session.Logout(ctx)
	fmt.Println("Logged out.")
	a.navigate("/login")
}

// Refresh swaps the credential for a fresh one.
func (a *App) Refresh(ctx context.Context) {
	if err := a.session.Refresh(ctx); err != nil {
		fmt.Printf("Refresh failed: %s\n", err.Error())
		return
	}
	fmt.Println("Token refreshed.")
}
