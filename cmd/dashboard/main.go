package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"sales-assistant/internal/apiclient"
	"sales-assistant/internal/dashboard"
	"sales-assistant/internal/shared/config"
	"sales-assistant/internal/shared/telemetry"
	"sales-assistant/internal/workflow"
)

func main() {
	cmd := newRootCmd(config.Load())
	if err := cmd.Execute(); err != nil {
		if !notified(err) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
		os.Exit(1)
	}
}

// notified reports whether the workflow already showed err to the user.
func notified(err error) bool {
	var (
		vErr *workflow.ValidationError
		uErr *workflow.UploadError
		fErr *workflow.FormatError
	)
	return errors.As(err, &vErr) || errors.As(err, &uErr) || errors.As(err, &fErr)
}

func newRootCmd(cfg config.Config) *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Sales assistant dashboard: analyze menus and show product recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Log lines go to stderr so stdout carries only notifications and tables.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			telemetry.SetOutput(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&baseURL, "base-url", cfg.DashboardBaseURL, "API origin")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 3*time.Minute, "HTTP client timeout")

	newClient := func() *apiclient.Client {
		return apiclient.New(baseURL, &http.Client{Timeout: timeout})
	}

	root.AddCommand(&cobra.Command{
		Use:   "analyze <image>",
		Short: "Upload a JPG or PNG menu image and show the analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			file, closer, err := dashboard.OpenImage(args[0])
			if err != nil {
				return err
			}
			defer closer.Close()

			out := cmd.OutOrStdout()
			wf := workflow.New(newClient(), workflow.WithNotifier(dashboard.NewPrinter(out)))
			if _, err := wf.Submit(ctx, file); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return dashboard.Render(out, wf.Snapshot())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "products",
		Short: "List recommended products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProducts(cmd.Context(), newClient(), cmd)
		},
	})

	return root
}

func listProducts(ctx context.Context, client *apiclient.Client, cmd *cobra.Command) error {
	resp, err := client.Products(ctx)
	if err != nil {
		return err
	}
	if !resp.OK() {
		if detail := apiclient.DetailMessage(resp.Body); detail != "" {
			return fmt.Errorf("recommendations: %s", detail)
		}
		return fmt.Errorf("recommendations: status %d", resp.Status)
	}
	products, err := apiclient.DecodeProducts(resp.Body)
	if err != nil {
		return err
	}
	return dashboard.RenderProducts(cmd.OutOrStdout(), products)
}
