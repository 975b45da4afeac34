package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GreatValueCreamSoda/hdrplay/api"
)

const serverGroup = "Server Options"

var serveFlags struct {
	listen string
	port   int
	dev    bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve probe results and error lookups over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()
		if flags.Changed("listen") {
			cfg.Server.Listen = serveFlags.listen
		}
		if flags.Changed("port") {
			cfg.Server.Port = serveFlags.port
		}
		if flags.Changed("dev") {
			cfg.Server.Dev = serveFlags.dev
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt,
			syscall.SIGTERM)
		defer stop()

		server := api.New(api.FFmsProber{Options: cfg.SourceOptions()},
			cfg.Server.Dev)
		return server.ListenAndServe(ctx, cfg.Server.Addr())
	},
}

func init() {
	flags := serveCmd.Flags()
	flags.StringVar(&serveFlags.listen, "listen", "127.0.0.1",
		"Address to listen on")
	flags.IntVarP(&serveFlags.port, "port", "p", 8090, "Port to listen on")
	flags.BoolVar(&serveFlags.dev, "dev", false,
		"Enable gin debug mode and request logging")
	for _, name := range []string{"listen", "port", "dev"} {
		addFlagToHelpGroup(flags, name, serverGroup)
	}
	RootCmd.AddCommand(serveCmd)
}
