package main

import (
	"context"
	"fmt"
	"io"

	"github.com/ddddddO/gtree"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dbnav/object-browser/internal/config"
	"github.com/dbnav/object-browser/internal/models"
	"github.com/dbnav/object-browser/internal/services"
	"github.com/dbnav/object-browser/internal/tree"
	"github.com/dbnav/object-browser/internal/util"
	"github.com/dbnav/object-browser/pkg/event"
)

type browseOptions struct {
	tree    string
	path    string
	depth   int
	noColor bool
}

func NewBrowseCommand(cfg *config.Configuration) *cobra.Command {
	opts := &browseOptions{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Print a subtree of the node api",
		Example: `  navigator browse --path /browser/1 --depth 3
  navigator browse --tree preferences`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.depth < 1 {
				return fmt.Errorf("depth must be at least 1, got %d", opts.depth)
			}
			color.NoColor = color.NoColor || opts.noColor

			nav, err := services.NewNavigator(cfg.Browser, cfg.Auth, event.NewBus())
			if err != nil {
				return err
			}
			defer nav.Close()

			return browse(cmd.Context(), cmd.OutOrStdout(), nav, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.tree, "tree", string(models.TreeBrowser), "tree to print (browser|preferences)")
	flags.StringVar(&opts.path, "path", "", "node to start from, defaults to the tree root")
	flags.IntVar(&opts.depth, "depth", 2, "number of levels to print")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

func browse(ctx context.Context, w io.Writer, nav *services.Navigator, opts *browseOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	t, err := nav.Tree(opts.tree)
	if err != nil {
		return err
	}

	rootPath := t.Store().RootPath()
	start := opts.path
	if start == "" {
		start = rootPath
	}
	segments := util.PathToSegments(rootPath, start)
	if segments == nil {
		return fmt.Errorf("path %s is not in the %s tree", start, opts.tree)
	}

	n, err := t.FindNodeWithToggle(ctx, segments)
	if err != nil {
		return err
	}

	root := gtree.NewRoot(nodeLabel(n))
	walk(ctx, t, n, root, opts.depth)
	return gtree.OutputFromRoot(w, root)
}

func walk(ctx context.Context, t *tree.Tree, n *tree.Node, out *gtree.Node, depth int) {
	if depth == 0 || ctx.Err() != nil {
		return
	}
	for _, c := range t.Store().ReadNode(ctx, n.Path()) {
		child := out.Add(nodeLabel(c))
		if c.IsDirectory() {
			walk(ctx, t, c, child, depth-1)
		}
	}
}

var (
	collectionColor   = color.New(color.FgCyan)
	connectableColor  = color.New(color.FgGreen, color.Bold)
	disconnectedColor = color.New(color.FgRed)
	typeColor         = color.New(color.Faint)
)

func nodeLabel(n *tree.Node) string {
	data, _ := n.Data()
	if data == nil {
		return n.Path()
	}

	label := data.RawLabel
	switch {
	case data.IsDisconnected():
		label = disconnectedColor.Sprint(label)
	case data.IsCollection:
		label = collectionColor.Sprint(label)
	case data.Connected != nil:
		label = connectableColor.Sprint(label)
	}
	if data.Type == "" {
		return label
	}
	return label + " " + typeColor.Sprintf("(%s)", data.Type)
}
