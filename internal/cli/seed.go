package cli

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"

	"github.com/taskvault/taskvault/internal/models"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the account with generated todos",
	Long:  "Generate realistic sample todos for testing and development",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProfile(cmd)
		if err != nil {
			return err
		}

		count, _ := cmd.Flags().GetInt("count")
		if count <= 0 {
			return fmt.Errorf("count must be positive")
		}

		client := NewClient(p.ServerURL)
		created := 0
		for i := 0; i < count; i++ {
			completed := gofakeit.Bool()
			req := &models.CreateTodoRequest{
				Title:       gofakeit.VerbAction() + " " + gofakeit.NounConcrete(),
				Description: gofakeit.Sentence(8),
				Completed:   &completed,
			}
			if _, err := client.CreateTodo(p.AccessToken, req); err != nil {
				return fmt.Errorf("seeding stopped after %d todos: %w", created, err)
			}
			created++
		}

		successf("Seeded %d todos", created)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().IntP("count", "c", 10, "Number of todos to generate")
}
