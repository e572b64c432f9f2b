package commands

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/datasmell/internal/cli/output"
	"github.com/leapstack-labs/datasmell/pkg/core"
	"github.com/leapstack-labs/datasmell/pkg/smell"
)

// SmellsOptions holds options for the smells command.
type SmellsOptions struct {
	Category string
	Type     string
}

// NewSmellsCommand creates the smells command.
func NewSmellsCommand() *cobra.Command {
	opts := &SmellsOptions{}
	cmd := &cobra.Command{
		Use:   "smells [smell-id]",
		Short: "List registered smell checks",
		Long: `List the registered smell checks with their category, supported column
types and default threshold. Configured thresholds and disabled smells are applied.

Pass a smell ID to show one check in detail.`,
		Example: `  # List all checks
  datasmell smells

  # Checks that apply to string columns
  datasmell smells --type STRING

  # Consistency checks as JSON
  datasmell smells --category consistency -o json`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeSmellIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSmells(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Filter by supported column type")

	_ = cmd.RegisterFlagCompletionFunc("category", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0)
		for _, c := range core.AllCategories() {
			out = append(out, string(c))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runSmells(cmd *cobra.Command, args []string, opts *SmellsOptions) error {
	cmdCtx := NewCommandContext(cmd)
	reg, err := cmdCtx.Registry()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return showSmell(cmdCtx.Renderer, reg, args[0])
	}

	infos, err := filterInfos(reg.Infos(), opts)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(infos)
	case output.ModeMarkdown:
		r.Println("# Smell checks")
		r.Println("")
	default:
		r.Println(r.Styles().Header1.Render("Smell checks"))
		r.Println("")
	}

	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{
			info.ID,
			core.Category(info.Category).Label(),
			strings.Join(info.SupportedTypes, ", "),
			strconv.FormatFloat(info.Mostly, 'f', -1, 64),
		}
	}
	r.Table([]string{"ID", "Category", "Types", "Mostly"}, rows)
	r.Println("")
	r.Printf("%d checks\n", len(infos))
	return nil
}

func filterInfos(infos []smell.Info, opts *SmellsOptions) ([]smell.Info, error) {
	var category core.Category
	if opts.Category != "" {
		category = core.Category(strings.ToLower(opts.Category))
		if !slices.Contains(core.AllCategories(), category) {
			return nil, &core.ConfigurationError{Key: "category", Reason: fmt.Sprintf("unknown category %q", opts.Category)}
		}
	}
	var dataType core.ColumnDataType
	if opts.Type != "" {
		t, ok := core.ParseColumnDataType(opts.Type)
		if !ok {
			return nil, &core.ConfigurationError{Key: "type", Reason: fmt.Sprintf("unknown column type %q", opts.Type)}
		}
		dataType = t
	}

	out := make([]smell.Info, 0, len(infos))
	for _, info := range infos {
		if category != "" && core.Category(info.Category) != category {
			continue
		}
		if dataType != "" && !slices.Contains(info.SupportedTypes, string(dataType)) {
			continue
		}
		out = append(out, info)
	}
	return out, nil
}

func showSmell(r *output.Renderer, reg *smell.Registry, id string) error {
	st, ok := core.ParseDataSmellType(id)
	if !ok {
		return &core.UnknownSmellError{Name: id}
	}
	def, err := reg.Lookup(st)
	if err != nil {
		return err
	}
	info := smell.InfoFor(def)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeMarkdown:
		r.Printf("# %s\n\n", info.Name)
		r.Printf("- **ID:** `%s`\n", info.ID)
		r.Printf("- **Category:** %s\n", core.Category(info.Category).Label())
		r.Printf("- **Types:** %s\n", strings.Join(info.SupportedTypes, ", "))
		r.Printf("- **Mostly:** %s\n", strconv.FormatFloat(info.Mostly, 'f', -1, 64))
		if info.Description != "" {
			r.Printf("\n%s\n", info.Description)
		}
	default:
		styles := r.Styles()
		r.Println(styles.Header1.Render(info.Name))
		r.Printf("  %s %s\n", styles.Muted.Render("ID:      "), info.ID)
		r.Printf("  %s %s\n", styles.Muted.Render("Category:"), core.Category(info.Category).Label())
		r.Printf("  %s %s\n", styles.Muted.Render("Types:   "), strings.Join(info.SupportedTypes, ", "))
		r.Printf("  %s %s\n", styles.Muted.Render("Mostly:  "), strconv.FormatFloat(info.Mostly, 'f', -1, 64))
		if info.Description != "" {
			r.Println("")
			r.Println("  " + info.Description)
		}
	}
	return nil
}
