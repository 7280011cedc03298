// Package serve implements the serve command, a small HTTP API exposing the
// statement parsing pipeline.
package serve

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	cmdcommon "ledgerline/bankstmt-csv/cmd/common"
	"ledgerline/bankstmt-csv/cmd/root"
	"ledgerline/bankstmt-csv/internal/logging"
	"ledgerline/bankstmt-csv/internal/parsererror"
	"ledgerline/bankstmt-csv/internal/pipeline"
)

var portFlag int

// Cmd is the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an HTTP API for statement parsing",
	Long: `Starts an HTTP server exposing the parsing pipeline. POST extracted
statement text to /api/parse and receive the validated, categorized
transactions as JSON, or a typed error describing why parsing failed.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(); err != nil {
			root.Exit(err)
		}
	},
}

func init() {
	Cmd.Flags().IntVarP(&portFlag, "port", "p", 8080, "Port to listen on")
}

type parseRequest struct {
	Text      string `json:"text"`
	PageCount int    `json:"pageCount"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    string              `json:"kind"`
	Message string              `json:"message"`
	Details parsererror.Details `json:"details"`
}

func run() error {
	opts := cmdcommon.PipelineOptions(root.Cfg)
	opts.Store = root.Overrides
	opts.Logger = logging.NewLogrusAdapterFromLogger(root.Log)
	p := pipeline.New(opts)

	app := fiber.New(fiber.Config{
		AppName:               "bankstmt-csv",
		DisableStartupMessage: true,
	})

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/api/parse", func(c *fiber.Ctx) error {
		var req parseRequest
		if err := c.BodyParser(&req); err != nil {
			// Fall back to treating the body as raw statement text.
			req = parseRequest{Text: string(c.Body())}
		}
		if req.Text == "" {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
				Error: errorBody{Kind: "EMPTY_REQUEST", Message: "request body must contain statement text"},
			})
		}

		result, err := p.Process(c.Context(), req.Text, req.PageCount)
		if err != nil {
			var se *parsererror.StatementError
			if errors.As(err, &se) {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(errorResponse{
					Error: errorBody{Kind: string(se.Kind), Message: se.Error(), Details: se.Details},
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
				Error: errorBody{Kind: "INTERNAL", Message: err.Error()},
			})
		}
		return c.JSON(result)
	})

	addr := fmt.Sprintf(":%d", portFlag)
	root.Log.WithField("addr", addr).Info("HTTP API listening")
	return app.Listen(addr)
}
