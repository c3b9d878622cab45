package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gallery-admin/internal/domain/users"
	"gallery-admin/internal/infra/jsonstore"

	"github.com/spf13/cobra"
)

func newSeedAdminCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an admin account, or promote and reset an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.TrimSpace(email)
			if email == "" {
				return errors.New("--email is required")
			}
			hash, err := hashPassword(password)
			if err != nil {
				return err
			}

			file := jsonstore.New[users.User](filepath.Join(dataDir, jsonstore.UsersFile))
			var (
				id      int
				created bool
			)
			err = file.Update(cmd.Context(), func(list []users.User) ([]users.User, error) {
				for i := range list {
					if strings.EqualFold(list[i].Email, email) {
						list[i].Password = hash
						list[i].Role = users.RoleAdmin
						list[i].AccountType = users.RoleAdmin
						list[i].Status = users.StatusActive
						id = list[i].ID
						return list, nil
					}
				}
				created = true
				id = users.NextID(list)
				return append(list, users.User{
					ID:          id,
					Email:       email,
					Password:    hash,
					Role:        users.RoleAdmin,
					AccountType: users.RoleAdmin,
					Status:      users.StatusActive,
					CreatedAt:   time.Now().Format(time.RFC3339),
				}), nil
			})
			if err != nil {
				return fmt.Errorf("update %s: %w", file.Path(), err)
			}

			verb := "updated"
			if created {
				verb = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s %s (id %d)\n", email, verb, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password (min 8 characters)")
	return cmd
}
