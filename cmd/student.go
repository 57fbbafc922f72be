package cmd

import (
	"fmt"

	"github.com/bnema/attendance-cli/internal/application"
	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newStudentCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Manage the class roster",
	}

	cmd.AddCommand(
		newStudentAddCmd(app),
		newStudentListCmd(app),
		newStudentUpdateCmd(app),
		newStudentRemoveCmd(app),
	)

	return cmd
}

func newStudentAddCmd(app *app) *cobra.Command {
	var studentID string
	var rollNumber string
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Enroll a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			student, err := app.roster.Add(cmd.Context(), application.AddStudentCommand{
				ID:         domain.StudentID(studentID),
				RollNumber: rollNumber,
				Name:       name,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", formatStudent(student))
			return err
		},
	}

	cmd.Flags().StringVar(&studentID, "id", "0", "Student ID (0 or empty auto-assigns next: 1,2,...)")
	cmd.Flags().StringVar(&rollNumber, "roll", "", "Roll number")
	cmd.Flags().StringVar(&name, "name", "", "Student name as reported by the recognizer")
	_ = cmd.MarkFlagRequired("roll")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newStudentListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List enrolled students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			students, err := app.roster.List(cmd.Context())
			if err != nil {
				return err
			}

			for _, student := range students {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", student.ID, student.RollNumber, student.Name)
			}

			return nil
		},
	}
}

func newStudentUpdateCmd(app *app) *cobra.Command {
	var studentID string
	var rollNumber string
	var name string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change a student's roll number or name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			student, err := app.roster.Update(cmd.Context(), application.UpdateStudentCommand{
				ID:         domain.StudentID(studentID),
				RollNumber: rollNumber,
				Name:       name,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", formatStudent(student))
			return err
		},
	}

	cmd.Flags().StringVar(&studentID, "id", "", "Student ID")
	cmd.Flags().StringVar(&rollNumber, "roll", "", "New roll number")
	cmd.Flags().StringVar(&name, "name", "", "New name")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newStudentRemoveCmd(app *app) *cobra.Command {
	var studentID string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a student and their attendance history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.roster.Remove(cmd.Context(), domain.StudentID(studentID)); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", studentID)
			return err
		},
	}

	cmd.Flags().StringVar(&studentID, "id", "", "Student ID")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func formatStudent(student domain.Student) string {
	return fmt.Sprintf("%s (%s, roll %s)", student.Name, student.ID, student.RollNumber)
}
