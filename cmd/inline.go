// Package cmd implements the command-line interface for kyoku.
package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/kyoku-cli/kyoku/extractor"
	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/inline"
	"github.com/kyoku-cli/kyoku/query"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to execute for track discovery")
	lo.Must0(inlineCmd.MarkFlagRequired("query"))

	inlineCmd.Flags().StringP("track", "t", "", "Criteria for selecting a specific track from the search results")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("include-variants", "V", false, "Execute stream extraction to include variant URLs for selected tracks")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Initialize the application for automated execution and data extraction using inline mode.

Track selectors:
  first - first track in the list
  last - last track in the list
  [number] - select track by index (starting from 0)
  @[substring]@ - select the first track whose title contains the substring

When the track selector is omitted all search results are returned`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err    error
			writer io.Writer = os.Stdout
		)

		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		}

		trackPicker := mo.None[inline.TrackPicker]()
		if selector := lo.Must(cmd.Flags().GetString("track")); selector != "" {
			fn, err := inline.ParseTrackPicker(selector)
			handleErr(err)
			trackPicker = mo.Some(fn)
		}

		options := &inline.Options{
			Out:             writer,
			Catalog:         extractor.New(),
			Json:            lo.Must(cmd.Flags().GetBool("json")),
			Query:           lo.Must(cmd.Flags().GetString("query")),
			TrackPicker:     trackPicker,
			IncludeVariants: lo.Must(cmd.Flags().GetBool("include-variants")),
		}

		handleErr(inline.Run(options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured inline mode outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "track", "variant", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		schema := reflector.Reflect(&inline.Output{})
		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
