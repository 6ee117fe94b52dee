package commands

import (
	"github.com/spf13/cobra"

	"github.com/Arrognz/babycheck/internal/server"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Starts the JSON API used by phones and wall displays: search, stats,
current state, day timelines and event entry.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "",
		"Listen address (default from config, :8089)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tr, cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	defer tr.Close()

	addr := cfg.Server.Listen
	if serveListen != "" {
		addr = serveListen
	}
	return server.New(tr, debug).Run(addr)
}
