// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package management

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/dashboard-api/internal/config"
	httphandler "github.com/MKhiriev/dashboard-api/internal/handler/http"
	"github.com/MKhiriev/dashboard-api/internal/logger"
	"github.com/MKhiriev/dashboard-api/internal/service"
	"github.com/MKhiriev/dashboard-api/models"
)

func (a *app) migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply pending database migrations",
		Action: func(c *cli.Context) error {
			return a.withRuntime(c, func(runtime *Runtime) error {
				if err := runtime.Migrate(); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Fprintln(c.App.Writer, "Migrations applied.")
				return nil
			})
		},
	}
}

func (a *app) createSuperuserCommand() *cli.Command {
	return &cli.Command{
		Name:  "createsuperuser",
		Usage: "create an active staff superuser",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, EnvVars: []string{"ADMIN_USERNAME"}},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, EnvVars: []string{"ADMIN_EMAIL"}},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
		},
		Action: func(c *cli.Context) error {
			isActive := true
			request := models.CreateUserRequest{
				Username:    c.String("username"),
				Email:       c.String("email"),
				Password:    c.String("password"),
				IsStaff:     true,
				IsSuperuser: true,
				IsActive:    &isActive,
			}

			return a.withRuntime(c, func(runtime *Runtime) error {
				user, err := runtime.Users.CreateUser(c.Context, request)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "Superuser %q created successfully.\n", user.Username)
				return nil
			})
		},
	}
}

func (a *app) changePasswordCommand() *cli.Command {
	return &cli.Command{
		Name:  "changepassword",
		Usage: "set a new password for a user",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			username := c.String("username")

			return a.withRuntime(c, func(runtime *Runtime) error {
				err := runtime.Users.ChangePassword(c.Context, username, c.String("password"))
				if errors.Is(err, service.ErrUserNotFound) {
					return fmt.Errorf("user %q does not exist: %w", username, err)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "Password changed successfully for user %q.\n", username)
				return nil
			})
		},
	}
}

func (a *app) routesCommand() *cli.Command {
	return &cli.Command{
		Name:  "routes",
		Usage: "print the HTTP route table",
		Action: func(c *cli.Context) error {
			handler := httphandler.NewHandler(&service.Services{}, config.Server{}, nil, logger.Nop())

			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATTERN\tNAME\tGUARD")
			for _, route := range handler.Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", route.Method, route.Pattern, route.Name, route.Guard)
			}
			return w.Flush()
		},
	}
}
