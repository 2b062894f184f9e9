package main

import (
	"fmt"
)

type loginCmd struct {
	Email    string `help:"Account email." required:""`
	Password string `help:"Account password." required:""`
}

func (l *loginCmd) Run(a *app) error {
	session, err := a.auth.SignIn(a.ctx, l.Email, l.Password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Signed in as %s\n", session.User.Email)
	return nil
}

type registerCmd struct {
	Email    string `help:"Account email." required:""`
	Password string `help:"Account password." required:""`
	Name     string `help:"Display name."`
}

func (r *registerCmd) Run(a *app) error {
	session, err := a.auth.SignUp(a.ctx, r.Email, r.Password, r.Name)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account created for %s\n", session.User.Email)
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Run(a *app) error {
	if err := a.auth.SignOut(a.ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

type whoamiCmd struct{}

func (whoamiCmd) Run(a *app) error {
	user, err := a.auth.CurrentUser(a.ctx)
	if err != nil {
		return err
	}

	if user.DisplayName != "" {
		fmt.Fprintf(a.out, "%s <%s>\n", user.DisplayName, user.Email)
	} else {
		fmt.Fprintln(a.out, user.Email)
	}
	return nil
}
