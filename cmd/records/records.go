// Package records renders the admin screens in the terminal.
package records

import (
	"github.com/spf13/cobra"

	"github.com/Alijeyrad/libremedic_admin/internal/screen"
	"github.com/Alijeyrad/libremedic_admin/pkg/clinicapi"
)

func NewRecordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List, show, create, update and delete backend records",
	}

	cmd.AddCommand(
		newResourceCommand(screen.Patients, func(c *clinicapi.Client) screen.Backend[clinicapi.Patient] { return c.Patients() }),
		newResourceCommand(screen.Doctors, func(c *clinicapi.Client) screen.Backend[clinicapi.User] { return c.Users() }),
		newResourceCommand(screen.Diagnoses, func(c *clinicapi.Client) screen.Backend[clinicapi.Diagnosis] { return c.Diagnoses() }),
		newResourceCommand(screen.Prescriptions, func(c *clinicapi.Client) screen.Backend[clinicapi.Prescription] { return c.Prescriptions() }),
		newResourceCommand(screen.MedicalCenters, func(c *clinicapi.Client) screen.Backend[clinicapi.MedicalCenter] { return c.MedicalCenters() }),
		newResourceCommand(screen.Appointments, func(c *clinicapi.Client) screen.Backend[clinicapi.Appointment] { return c.Appointments() }),
	)

	return cmd
}
