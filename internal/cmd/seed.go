package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rpggio/intentcat/internal/domain/category"
	"github.com/rpggio/intentcat/internal/domain/intent"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML layout accepted by the seed command.
type seedFile struct {
	Categories []struct {
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"categories"`
	Intents []struct {
		Name        string   `yaml:"name"`
		Category    string   `yaml:"category"`
		Description string   `yaml:"description"`
		Keywords    []string `yaml:"keywords"`
		Kind        string   `yaml:"kind"`
		Status      string   `yaml:"status"`
		Response    string   `yaml:"response"`
	} `yaml:"intents"`
}

var seedCmd = &cobra.Command{
	Use:   "seed <catalog.yaml>",
	Short: "Load categories and intents from a YAML file",
	Long: `Load categories and intents from a YAML file into the tenant's catalog.
Categories whose ID already exists are left alone; intents are always added.

Example:

  categories:
    - id: media
      name: Media
  intents:
    - name: 播放音乐
      category: media
      kind: core
      keywords: [播放, 音乐, 听歌]`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	a, err := openApp(stderrLogs(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()

	var categories, intents int
	for _, c := range seed.Categories {
		if c.ID != "" {
			if _, err := a.categories.Get(ctx, a.tenantID, c.ID); err == nil {
				continue
			} else if !errors.Is(err, category.ErrCategoryNotFound) {
				return err
			}
		}
		if _, err := a.categories.Create(ctx, a.tenantID, category.CreateRequest{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
		}); err != nil {
			return fmt.Errorf("category %q: %w", c.Name, err)
		}
		categories++
	}

	for _, in := range seed.Intents {
		if _, err := a.intents.Create(ctx, a.tenantID, intent.CreateRequest{
			CategoryID:  in.Category,
			Name:        in.Name,
			Description: in.Description,
			Keywords:    in.Keywords,
			Kind:        intent.Kind(in.Kind),
			Status:      intent.Status(in.Status),
			Response:    in.Response,
		}); err != nil {
			return fmt.Errorf("intent %q: %w", in.Name, err)
		}
		intents++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories and %d intents for tenant %s\n", categories, intents, a.tenantID)
	return nil
}
