package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/Alijeyrad/libremedic_admin/cmd/http"
	recordscmd "github.com/Alijeyrad/libremedic_admin/cmd/records"
	systemcmd "github.com/Alijeyrad/libremedic_admin/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "libremedic",
	Short: "LibreMedic administrative front-end for the clinical records backend.",
	Long: `LibreMedic Admin manages patients, doctors, diagnoses, prescriptions,
appointments and medical centers stored in the clinical records REST backend.
It serves the admin screens over HTTP and offers the same screens in the terminal.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
	rootCmd.AddCommand(recordscmd.NewRecordsCommand())
	rootCmd.AddCommand(recordscmd.NewHealthCommand())
}
