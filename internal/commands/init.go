package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/caixa-dev/caixa/internal/categories"
	"github.com/caixa-dev/caixa/internal/config"
	"github.com/caixa-dev/caixa/internal/gitops"
	"github.com/caixa-dev/caixa/internal/logger"
	"github.com/caixa-dev/caixa/internal/model"
	"github.com/caixa-dev/caixa/internal/nlp"
)

func newInitCommand() *cobra.Command {
	var name string
	var businessType string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new caixa project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			bt := model.BusinessType(businessType)
			if !bt.Valid() {
				return fmt.Errorf("unknown business type %q (barbershop, salon, workshop, retail, other)", businessType)
			}

			return runInit(cmd, absDir, name, bt)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&businessType, "business-type", string(model.BusinessOther), "barbershop, salon, workshop, retail or other")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name string, businessType model.BusinessType) error {
	log := logger.FromContext(cmd.Context())

	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s already has a %s", dir, config.FileName)
	}

	dirs := []string{
		"categories",
		"rules",
		"alerts",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name, businessType)
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	vocab := nlp.DefaultVocabulary()
	if err := nlp.SaveVocabulary(filepath.Join(dir, cfg.Parser.Vocabulary), vocab); err != nil {
		return fmt.Errorf("writing vocabulary: %w", err)
	}

	cats := categories.NewService(categories.DefaultCategories(vocab, businessType))
	if err := cats.Save(dir); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}

	gitignore := ".env\nimport/*.wav\nimport/*.mp3\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
	}

	hash, err := gitops.CommitAll(dir, "init: Initialize "+name, gitops.Author{
		Name:  cfg.Git.AuthorName,
		Email: cfg.Git.AuthorEmail,
	})
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}
	log.Debug().Str("commit", hash).Str("business_id", cfg.Business.ID).Msg("project initialized")

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized caixa project at %s (%s)\n", dir, hash)
	return nil
}
