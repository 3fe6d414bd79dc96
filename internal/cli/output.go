package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/taskvault/taskvault/internal/models"
)

func successf(format string, args ...any) {
	fmt.Printf("✓ "+format+"\n", args...)
}

func infof(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTodoTable(todos []*models.Todo) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tTITLE\tCREATED")
	for _, t := range todos {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%s\t[%s]\t%s\t%s\n", t.ID, done, t.Title, t.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func printTodo(t *models.Todo) {
	status := "pending"
	if t.Completed {
		status = "completed"
	}
	infof("ID:          %s", t.ID)
	infof("Title:       %s", t.Title)
	if t.Description != "" {
		infof("Description: %s", t.Description)
	}
	infof("Status:      %s", status)
	infof("Created:     %s", t.CreatedAt.Format("2006-01-02 15:04:05"))
	infof("Updated:     %s", t.UpdatedAt.Format("2006-01-02 15:04:05"))
}
