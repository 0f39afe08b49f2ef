package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/monishpeddapally/hostel-management-system/models"
	"github.com/monishpeddapally/hostel-management-system/services"
)

var staffInput services.StaffInput
var staffRole string

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Manage staff accounts",
}

var staffAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a staff account",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := bootstrap()
		if err != nil {
			return err
		}
		defer e.close()

		in := staffInput
		in.Role = models.StaffRole(staffRole)
		auth := services.NewAuthService(e.db, e.log, e.cfg.JWTSecret, e.cfg.JWTTTL)
		staff, err := auth.CreateStaff(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) id=%d\n", staff.Username, staff.Role, staff.ID)
		return nil
	},
}

func init() {
	f := staffAddCmd.Flags()
	f.StringVar(&staffInput.Username, "username", "", "login name")
	f.StringVar(&staffInput.Password, "password", "", "initial password (min 6 characters)")
	f.StringVar(&staffInput.FirstName, "first-name", "", "first name")
	f.StringVar(&staffInput.LastName, "last-name", "", "last name")
	f.StringVar(&staffRole, "role", string(models.RoleReceptionist), "admin, manager or receptionist")
	_ = staffAddCmd.MarkFlagRequired("username")
	_ = staffAddCmd.MarkFlagRequired("password")

	staffCmd.AddCommand(staffAddCmd)
	rootCmd.AddCommand(staffCmd)
}
