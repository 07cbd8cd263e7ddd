// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/cmd/yamdbctl/output"
	"github.com/taibuivan/yamdb/internal/policy"
	"github.com/taibuivan/yamdb/internal/users/account"
)

func newUserCmd(opts *options) *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage privileged accounts",
	}

	user.AddCommand(newCreateSuperuserCmd(opts), newSetRoleCmd(opts))
	return user
}

func newCreateSuperuserCmd(opts *options) *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "create-superuser",
		Short: "Create an administrator with the superuser override",
		Long: `Create an administrator with the superuser override.

The account signs in like any other: request a code with POST /auth/signup
using the same username and email, then exchange it at POST /auth/token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAccounts(cmd, opts, func(ctx context.Context, service *account.Service) error {
				created, err := service.Create(ctx, account.CreateInput{
					Username:  username,
					Email:     email,
					Role:      string(policy.RoleAdmin),
					Superuser: true,
				})
				if err != nil {
					return wrap("create superuser", err)
				}

				w := cmd.OutOrStdout()
				output.Success(w, "superuser created")
				output.Field(w, "id", created.ID)
				output.Field(w, "username", created.Username)
				output.Field(w, "email", created.Email)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username of the new account")
	cmd.Flags().StringVar(&email, "email", "", "Email of the new account")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newSetRoleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "set-role <username> <role>",
		Short:     "Change the role of an account",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(policy.RoleUser), string(policy.RoleModerator), string(policy.RoleAdmin)},
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			role := strings.ToLower(strings.TrimSpace(args[1]))

			if _, err := policy.ParseRole(role); err != nil {
				return wrap("set role", err)
			}

			return withAccounts(cmd, opts, func(ctx context.Context, service *account.Service) error {
				updated, err := service.Update(ctx, username, account.UpdateInput{Role: &role})
				if err != nil {
					return wrap("set role", err)
				}

				output.Success(cmd.OutOrStdout(), "%s is now %s", updated.Username, updated.Role)
				return nil
			})
		},
	}
}

// withAccounts connects to the database and runs fn with an account service.
func withAccounts(cmd *cobra.Command, opts *options, fn func(ctx context.Context, service *account.Service) error) error {
	ctx := contextOf(cmd)

	pool, err := opts.connect(ctx)
	if err != nil {
		return wrap("connect", err)
	}
	defer pool.Close()

	return fn(ctx, account.NewService(account.NewAccountRepository(pool), opts.logger()))
}
