// Copyright (C) 2025 Radportal Labs, Inc.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the FSF, either version 3 of the License, or (at your option) any later version.
// See the LICENSE file in the root of this repository for full license text or
// visit: <https://www.gnu.org/licenses/gpl-3.0.html>.

package main

import (
	"fmt"

	"github.com/radportal-labs/radportal/pkg/identities"
	"github.com/radportal-labs/radportal/pkg/registry"
	"github.com/radportal-labs/radportal/pkg/schemas"
	"github.com/spf13/cobra"
)

func openRegistry(dataDir string) (*registry.Registry, error) {
	return registry.Open(dataDir, schemas.DefaultSettings("", schemas.DefaultTheme))
}

func newUserCommand(dataDir *string) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage portal accounts",
	}

	userCmd.AddCommand(newUserListCommand(dataDir))
	userCmd.AddCommand(newUserAddCommand(dataDir))
	userCmd.AddCommand(newUserResetPasswordCommand(dataDir))

	return userCmd
}

func newUserListCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List portal accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = reg.Close() }()

			users, err := reg.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\n",
					u.ID, u.Email, u.Name, u.Role, u.AllowedModalities)
			}
			return nil
		},
	}
}

func newUserAddCommand(dataDir *string) *cobra.Command {
	var (
		name       string
		password   string
		modalities string
		admin      bool
	)

	cmd := &cobra.Command{
		Use:   "add <email>",
		Short: "Create a portal account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = reg.Close() }()

			ctx := cmd.Context()
			email := args[0]
			if _, err := reg.FindUserByEmail(ctx, email); err == nil {
				return fmt.Errorf("e-mail %s is already registered", email)
			}

			hash, err := identities.HashPassword(password)
			if err != nil {
				return err
			}
			role := schemas.RoleUser
			if admin {
				role = schemas.RoleAdmin
			}
			user := schemas.User{
				Name:              name,
				Email:             email,
				PasswordHash:      hash,
				AllowedModalities: modalities,
				Role:              role,
			}.Normalize()
			if err := user.Validate(); err != nil {
				return err
			}

			created, err := reg.Users.Insert(ctx, user)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s)\n", created.ID, created.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringVar(&modalities, "modalities", schemas.AllModalities,
		"comma separated modality codes, or * for all")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the admin role")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUserResetPasswordCommand(dataDir *string) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "reset-password <email>",
		Short: "Reset an account password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := openRegistry(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = reg.Close() }()

			ctx := cmd.Context()
			user, err := reg.FindUserByEmail(ctx, args[0])
			if err != nil {
				return err
			}

			hash, err := identities.HashPassword(password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
			if _, err := reg.Users.Update(ctx, user.ID, user); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "new password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
