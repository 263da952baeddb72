package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frontkit/create-frontend/internal/catalog"
	"github.com/frontkit/create-frontend/internal/config"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List frameworks and their templates",
	Long: `List every framework in the template catalog together with the template ids
accepted by --template. The first framework is the interactive default.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry is one framework for JSON output.
type listEntry struct {
	Name      string   `json:"name"`
	Display   string   `json:"display"`
	Templates []string `json:"templates"`
	Scripts   []string `json:"scripts,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	config.Load()
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	if listJSON {
		return printListJSON(cmd.OutOrStdout(), cat)
	}
	return printListText(cmd.OutOrStdout(), cat)
}

func printListText(w io.Writer, cat *catalog.Catalog) error {
	var b strings.Builder
	for _, fw := range cat.Frameworks() {
		fmt.Fprintf(&b, "%s\n", catalog.Paint(fw.Color, fw.Label()))
		if len(fw.Variants) == 0 {
			fmt.Fprintf(&b, "  %s\n", fw.Name)
			continue
		}
		for _, v := range fw.Variants {
			fmt.Fprintf(&b, "  %-14s %s\n", v.Name, catalog.Paint(v.Color, v.Label()))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func printListJSON(w io.Writer, cat *catalog.Catalog) error {
	var entries []listEntry
	for _, fw := range cat.Frameworks() {
		entries = append(entries, listEntry{
			Name:      fw.Name,
			Display:   fw.Label(),
			Templates: fw.TemplateIDs(),
			Scripts:   fw.Overlay.Scripts.Keys(),
		})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
