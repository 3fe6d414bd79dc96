package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskvault/taskvault/internal/models"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Todo commands",
	Long:  "Create, list, update, and delete your todos",
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your todos",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}

		todos, err := NewClient(p.ServerURL).ListTodos(p.AccessToken)
		if err != nil {
			return err
		}

		if format, _ := cmd.Flags().GetString("output"); format == "json" {
			return printJSON(todos)
		}
		if len(todos) == 0 {
			infof("No todos yet. Add one with 'tvctl todo add'.")
			return nil
		}
		printTodoTable(todos)
		return nil
	},
}

var todoAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}

		description, _ := cmd.Flags().GetString("description")
		todo, err := NewClient(p.ServerURL).CreateTodo(p.AccessToken, &models.CreateTodoRequest{
			Title:       args[0],
			Description: description,
		})
		if err != nil {
			return err
		}

		if format, _ := cmd.Flags().GetString("output"); format == "json" {
			return printJSON(todo)
		}
		successf("Created todo %s", todo.ID)
		return nil
	},
}

var todoGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}

		todo, err := NewClient(p.ServerURL).GetTodo(p.AccessToken, args[0])
		if err != nil {
			return err
		}

		if format, _ := cmd.Flags().GetString("output"); format == "json" {
			return printJSON(todo)
		}
		printTodo(todo)
		return nil
	},
}

var todoDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a todo as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}

		completed := true
		todo, err := NewClient(p.ServerURL).UpdateTodo(p.AccessToken, args[0], &models.UpdateTodoRequest{
			Completed: &completed,
		})
		if err != nil {
			return err
		}

		successf("Completed: %s", todo.Title)
		return nil
	},
}

var todoEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}

		req := &models.UpdateTodoRequest{}
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			req.Title = &title
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			req.Description = &description
		}
		if cmd.Flags().Changed("completed") {
			completed, _ := cmd.Flags().GetBool("completed")
			req.Completed = &completed
		}
		if req.Title == nil && req.Description == nil && req.Completed == nil {
			return fmt.Errorf("nothing to update, pass --title, --description, or --completed")
		}

		todo, err := NewClient(p.ServerURL).UpdateTodo(p.AccessToken, args[0], req)
		if err != nil {
			return err
		}

		if format, _ := cmd.Flags().GetString("output"); format == "json" {
			return printJSON(todo)
		}
		successf("Updated todo %s", todo.ID)
		return nil
	},
}

var todoRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}

		if err := NewClient(p.ServerURL).DeleteTodo(p.AccessToken, args[0]); err != nil {
			return err
		}

		successf("Deleted todo %s", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoListCmd)
	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoGetCmd)
	todoCmd.AddCommand(todoDoneCmd)
	todoCmd.AddCommand(todoEditCmd)
	todoCmd.AddCommand(todoRmCmd)

	todoAddCmd.Flags().StringP("description", "d", "", "Todo description")
	todoEditCmd.Flags().String("title", "", "New title")
	todoEditCmd.Flags().String("description", "", "New description")
	todoEditCmd.Flags().Bool("completed", false, "Completion state")
}
