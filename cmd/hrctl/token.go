package main

import (
	"fmt"
	"time"

	authutils "hr-admin-backend/lib/utils/auth-utils"
	"hr-admin-backend/models"

	"github.com/spf13/cobra"
)

func tokenCmd(a *app) *cobra.Command {
	user := authutils.TokenUser{}
	var role string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Выпустить JWT для разработки",
		RunE: func(cmd *cobra.Command, args []string) error {
			user.Role = models.UserRole(role)
			token, err := authutils.NewToken(a.conf.JWTSecret, ttl, user)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, token)
			return nil
		},
	}
	cmd.Flags().UintVar(&user.UserID, "user", 1, "ИД пользователя")
	cmd.Flags().StringVar(&user.Name, "name", "admin", "имя пользователя")
	cmd.Flags().UintVar(&user.TenantID, "tenant", 1, "ИД компании")
	cmd.Flags().UintVar(&user.EmployeeID, "employee", 0, "ИД сотрудника")
	cmd.Flags().StringVar(&role, "role", string(models.AdminRole), "роль: admin, hr, employee")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "срок действия")
	return cmd
}
