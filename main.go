package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"tenderdesk/apiclient"
	"tenderdesk/collections"
	"tenderdesk/config"
	"tenderdesk/dialogs"
	"tenderdesk/handlers"
	"tenderdesk/services"
)

// dialogMaxIdle is how long an untouched dialog survives before the sweep
// closes it.
const dialogMaxIdle = time.Hour

func main() {
	config.LoadDotEnv()

	app := pocketbase.New()

	var apiURL string
	app.RootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "",
		"tender API base URL (overrides "+config.EnvAPIURL+")")
	app.RootCmd.ParseFlags(os.Args[1:])
	app.RootCmd.AddCommand(newGSTCommand())

	baseCtx, cancel := context.WithCancel(context.Background())
	registry := dialogs.NewRegistry(baseCtx)

	app.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		cancel()
		return e.Next()
	})

	// Create collections on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		cfg, err := config.FromEnv(apiURL)
		if err != nil {
			return fmt.Errorf("tenderdesk: %w", err)
		}
		api := apiclient.New(cfg.APIURL, cfg.APITimeout)
		log.Printf("tenderdesk: using tender API at %s (timeout %s)", api.BaseURL(), cfg.APITimeout)

		app.Cron().MustAdd("sweep_dialogs", "*/10 * * * *", func() {
			if n := registry.Sweep(dialogMaxIdle); n > 0 {
				app.Logger().Info("swept idle dialogs", "count", n, "open", registry.Len())
			}
		})

		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Load the caller's session identifiers for every request
		se.Router.BindFunc(handlers.SessionMiddleware(app))

		se.Router.POST("/session", handlers.HandleSessionSave(app))

		// ── Dialogs ──────────────────────────────────────────────
		se.Router.GET("/resale/new", handlers.HandleResaleOpen(app, registry, api))
		se.Router.GET("/tenders/{millTenderId}/edit", handlers.HandleTenderOpen(app, registry))
		se.Router.POST("/dialogs/{dialogId}/fields", handlers.HandleDialogField(app, registry))
		se.Router.POST("/dialogs/{dialogId}/item", handlers.HandleResaleItem(app, registry))
		se.Router.POST("/dialogs/{dialogId}/submit", handlers.HandleDialogSubmit(app, registry, api))
		se.Router.DELETE("/dialogs/{dialogId}", handlers.HandleDialogClose(app, registry))

		// ── Tender mirror ────────────────────────────────────────
		se.Router.GET("/tenders", handlers.HandleTenderList(app))
		se.Router.POST("/tenders/import", handlers.HandleTenderImport(app))
		se.Router.GET("/tenders/export", handlers.HandleTenderExport(app))

		// Redirect home to the tender list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/tenders")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// newGSTCommand prints the derived GST fields for a base rate and percentage.
func newGSTCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gst <base-rate> <gst-percent>",
		Short: "Compute the GST amount and GST-inclusive rate",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			gst := services.CalcTenderGST(args[0], args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "Base_Rate_GST_Amount: %s\n", gst.GSTAmount)
			fmt.Fprintf(cmd.OutOrStdout(), "Rate_Including_GST:   %s\n", gst.RateIncludingGST)
		},
	}
}
