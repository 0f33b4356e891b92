package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/pkg/render"
)

func renderCmd() *cobra.Command {
	var pretty bool
	var minify bool

	cmd := &cobra.Command{
		Use:   "render <in.html>",
		Short: "Re-serialize a markup snapshot",
		Long: `Render parses a markup snapshot into a tree and serializes it back,
normalizing it to the engine's canonical form. With --pretty the output
is indented for reading; with --minify it is minified for serving.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("pretty") {
				pretty = cfg.Render.Pretty
			}
			if !cmd.Flags().Changed("minify") {
				minify = cfg.Render.Minify
			}
			if pretty && minify {
				return fmt.Errorf("--pretty and --minify are mutually exclusive")
			}

			tree, err := parseTreeFile(args[0])
			if err != nil {
				return err
			}

			var markup string
			switch {
			case minify:
				markup, err = render.MinifyString(tree)
			case pretty:
				markup, err = render.New(render.Config{Pretty: true, Indent: cfg.Render.Indent}).RenderString(tree)
			default:
				markup, err = render.String(tree)
			}
			if err != nil {
				return err
			}

			fmt.Print(markup)
			if len(markup) > 0 && markup[len(markup)-1] != '\n' {
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print the output")
	cmd.Flags().BoolVar(&minify, "minify", false, "Minify the output")

	return cmd
}
