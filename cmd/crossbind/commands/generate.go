package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crossbind/crossbind/convert"
	"github.com/crossbind/crossbind/parse"
	"github.com/crossbind/crossbind/scan"
	"github.com/crossbind/crossbind/typedb"
)

var (
	genConfig       string
	genTree         string
	genTypedb       string
	genIncludes     []string
	genExcludeUtils bool
	genPolicy       string
	genOutput       string
)

// GenerateCmd runs the conversion pipeline once.
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Convert a scanned declaration tree into bridge declarations",
	Long: `Run the conversion pipeline over a scanned declaration tree.

The pipeline extracts the declarations, computes by-value safety for every
aggregate type, parses the items into API records, prunes everything not
reachable from the allowlist, and emits the bridge artifact.

Examples:
  crossbind generate --tree scan.json --typedb typedb.toml
  crossbind generate --tree scan.json --typedb typedb.toml --include widget.h
  crossbind generate --config crossbind.toml -o out.bridge`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVar(&genConfig, "config", "", "TOML config file with generate defaults")
	GenerateCmd.Flags().StringVar(&genTree, "tree", "", "Scanned declaration tree (JSON or YAML)")
	GenerateCmd.Flags().StringVar(&genTypedb, "typedb", "", "Type database file (TOML)")
	GenerateCmd.Flags().StringSliceVar(&genIncludes, "include", nil, "Header to include in the emitted artifact (repeatable)")
	GenerateCmd.Flags().BoolVar(&genExcludeUtils, "exclude-utilities", false, "Skip the scanner's helper namespace")
	GenerateCmd.Flags().StringVar(&genPolicy, "unsafe-policy", "safe", "Unsafe annotation policy: safe, unsafe, or marked")
	GenerateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output file (default: stdout)")
}

// generateSettings resolves flag and config-file values, flags winning.
func generateSettings(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("unsafe_policy", "safe")

	if genConfig != "" {
		v.SetConfigFile(genConfig)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", genConfig, err)
		}
	}

	bind := map[string]string{
		"tree":              "tree",
		"typedb":            "typedb",
		"include":           "include",
		"exclude_utilities": "exclude-utilities",
		"unsafe_policy":     "unsafe-policy",
		"output":            "output",
	}
	for key, flag := range bind {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	v, err := generateSettings(cmd)
	if err != nil {
		return err
	}
	return generateOnce(v)
}

func generateOnce(v *viper.Viper) error {
	treePath := v.GetString("tree")
	typedbPath := v.GetString("typedb")
	if treePath == "" {
		return fmt.Errorf("no scanned tree given (--tree)")
	}
	if typedbPath == "" {
		return fmt.Errorf("no type database given (--typedb)")
	}

	policy, err := parse.ParseUnsafePolicy(v.GetString("unsafe_policy"))
	if err != nil {
		return err
	}

	db, err := typedb.LoadFile(typedbPath)
	if err != nil {
		return err
	}
	root, err := scan.LoadTree(treePath)
	if err != nil {
		return err
	}

	converter := convert.New(v.GetStringSlice("include"), db)
	results, err := converter.Convert(root, convert.Options{
		ExcludeUtilities: v.GetBool("exclude_utilities"),
		UnsafePolicy:     policy,
	})
	if err != nil {
		return err
	}

	output := v.GetString("output")
	if output == "" {
		fmt.Print(results.Bridge)
		return nil
	}

	if err := os.WriteFile(output, []byte(results.Bridge), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	pterm.Printf("%s %s (%d records, %d diagnostics)\n",
		pterm.LightGreen("✓ Generated:"),
		pterm.White(output),
		len(results.APIs),
		len(results.Diagnostics))
	for _, diag := range results.Diagnostics {
		pterm.Printf("  %s %s\n", pterm.Gray("→"), pterm.Yellow(diag))
	}
	return nil
}
