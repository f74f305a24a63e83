package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/vestools/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "vestools reconstructs and layers filament morphologies",
		Long: `vestools reads NEURON-style .hoc/.ves morphology files, rebuilds each
filament as a graph of polyline endpoints, assigns breadth-first layers from a
chosen root and renders the result in 2D, 3D or as a node-link diagram.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			if path != "" {
				c.Logger.Debug("loaded config", "path", path)
			}
			c.config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default ./"+configFile+" or ~/.config/"+appName+"/config.toml)")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable caching")
	pf.StringVar(&c.cacheURL, "cache-url", "", "shared cache URL (redis://host:port/db)")

	root.AddCommand(c.componentsCommand())
	root.AddCommand(c.nodesCommand())
	root.AddCommand(c.layersCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
