package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/khoahotran/profile-playground/adapters/store"
	"github.com/khoahotran/profile-playground/internal/config"
	"github.com/khoahotran/profile-playground/internal/domain/user"
	"github.com/khoahotran/profile-playground/pkg/auth"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

type seedOwnerOptions struct {
	name     string
	email    string
	password string
}

func newSeedOwnerCmd() *cobra.Command {
	opts := seedOwnerOptions{}
	cmd := &cobra.Command{
		Use:   "seed-owner",
		Short: "Create the owner account, or reset its name and password",
		Long: `seed-owner writes a user into the store selected by DB_DRIVER.
Values default to OWNER_NAME, OWNER_EMAIL and OWNER_PASSWORD.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeedOwner(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.name, "name", os.Getenv("OWNER_NAME"), "owner display name")
	cmd.Flags().StringVar(&opts.email, "email", os.Getenv("OWNER_EMAIL"), "owner email")
	cmd.Flags().StringVar(&opts.password, "password", os.Getenv("OWNER_PASSWORD"), "owner password (min 6 characters)")
	return cmd
}

func runSeedOwner(cmd *cobra.Command, opts seedOwnerOptions) error {
	if opts.email == "" {
		return errors.New("owner email is required (--email or OWNER_EMAIL)")
	}
	if len(opts.password) < 6 {
		return errors.New("owner password must have at least 6 characters")
	}
	if opts.name == "" {
		opts.name = "Owner"
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	log := logger.NewZapLogger(cfg.App.Env)
	defer log.Sync()

	st, err := store.Open(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	hash, err := auth.HashPassword(opts.password)
	if err != nil {
		return fmt.Errorf("cannot hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         opts.name,
		Email:        opts.email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := st.Users.UpsertByEmail(cmd.Context(), u); err != nil {
		return fmt.Errorf("cannot add user: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "added or updated owner '%s' (%s) successfully!\n", u.Email, u.ID)
	return nil
}
