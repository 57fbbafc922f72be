package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "att",
		Short:         "Attendance CLI (att): run recognition sessions and keep class attendance",
		Long:          "att keeps a class roster, runs timed face recognition sessions against a capture device, commits one attendance record per student and reports attendance from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, _ []string) error {
		return app.close(cmd.Context())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newStudentCmd(app),
		newSessionCmd(app),
		newAttendanceCmd(app),
	)

	return rootCmd
}
