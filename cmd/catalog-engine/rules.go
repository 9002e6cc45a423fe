// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-engine/internal/rules"
	"github.com/pdiddy/catalog-engine/pkg/types"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage the categorization rule store (list, put, delete, seed)",
	Long: `Rules manages the SQLite store the classification engine reads from.
Use subcommands to inspect the current rule set, add or replace a rule,
remove one, or seed the store from a YAML file.`,
}

// --- list subcommand ---

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored categorization rules",
	RunE:  runRulesList,
}

func runRulesList(cmd *cobra.Command, args []string) error {
	store, err := openRuleStore()
	if err != nil {
		return err
	}
	defer store.Close()

	activeOnly, _ := cmd.Flags().GetBool("active")
	ruleSet, err := store.List(context.Background(), activeOnly)
	if err != nil {
		return err
	}

	if len(ruleSet) == 0 {
		fmt.Println("No rules stored. Seed the store with: catalog-engine rules seed <file.yaml>")
		return nil
	}

	fmt.Printf("%-24s  %-12s  %8s  %-6s  %s\n", "ID", "Category", "Priority", "Active", "Keywords")
	fmt.Println(strings.Repeat("-", 90))
	for _, r := range ruleSet {
		active := "no"
		if r.IsActive {
			active = "yes"
		}
		keywords := strings.Join(r.Keywords, ", ")
		if len(keywords) > 40 {
			keywords = keywords[:37] + "..."
		}
		fmt.Printf("%-24s  %-12s  %8d  %-6s  %s\n", r.ID, r.Category, r.Priority, active, keywords)
	}
	return nil
}

// --- put subcommand ---

var rulesPutCmd = &cobra.Command{
	Use:   "put",
	Short: "Insert or replace a categorization rule",
	RunE:  runRulesPut,
}

func runRulesPut(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	category, _ := cmd.Flags().GetString("category")
	keywords, _ := cmd.Flags().GetString("keywords")
	priority, _ := cmd.Flags().GetInt("priority")
	active, _ := cmd.Flags().GetBool("active")

	store, err := openRuleStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rule := types.CategorizationRule{
		ID:       id,
		Category: types.Category(category),
		Keywords: strings.Split(keywords, ","),
		Priority: priority,
		IsActive: active,
	}
	if err := store.Put(context.Background(), rule); err != nil {
		return err
	}
	fmt.Printf("Stored rule %s\n", id)
	return nil
}

// --- delete subcommand ---

var rulesDeleteCmd = &cobra.Command{
	Use:   "delete <rule-id>",
	Short: "Remove a categorization rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRuleStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted rule %s\n", args[0])
		return nil
	},
}

// --- seed subcommand ---

var rulesSeedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load rules from a YAML seed file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openRuleStore()
		if err != nil {
			return err
		}
		defer store.Close()

		stored, err := store.Seed(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d rule(s) from %s\n", stored, args[0])
		return nil
	},
}

// --- shared helpers ---

func openRuleStore() (*rules.SQLiteStore, error) {
	return rules.NewSQLiteStore(pipelineConfig().Rules.DBPath)
}

func init() {
	rulesListCmd.Flags().Bool("active", false, "show only active rules")

	rulesPutCmd.Flags().String("id", "", "rule identifier (required)")
	rulesPutCmd.Flags().String("category", "", "target category (required)")
	rulesPutCmd.Flags().String("keywords", "", "match keywords (comma-separated, required)")
	rulesPutCmd.Flags().Int("priority", 1, "positive priority weight")
	rulesPutCmd.Flags().Bool("active", true, "whether the rule participates in scoring")

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesPutCmd)
	rulesCmd.AddCommand(rulesDeleteCmd)
	rulesCmd.AddCommand(rulesSeedCmd)

	rootCmd.AddCommand(rulesCmd)
}
