package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/dmitrijs2005/gophstore/internal/models"
)

// Register prompts for email, password, name and role and creates the
// account, which also becomes the session.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	role, err := getOptional(a.reader, "Role (user/admin)", string(models.RoleUser), a.out)
	if err != nil {
		return err
	}

	acc, err := a.identity.Register(ctx, email, string(password), name, models.Role(role))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Success! Logged in as %s (%s)\n", acc.Name, acc.Role)
	return nil
}

// Login prompts for credentials and establishes the session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acc, err := a.identity.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s\n", acc.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.identity.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	acc, ok := a.identity.Current().Get()
	if !ok {
		return common.ErrUnauthorized
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s since %s\n", acc.Name, acc.Email, acc.Role, acc.CreatedAt.Format("2006-01-02"))
	return nil
}
