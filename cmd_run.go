package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"marketing_slogan_generator/console"
	"marketing_slogan_generator/generator"
	"marketing_slogan_generator/server"
)

func newMenuCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive text menu (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, flags)
		},
	}
}

func runMenu(cmd *cobra.Command, flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	c := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), buildAgent(cfg, flags))
	return c.Menu(cmd.Context())
}

func newDemoCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the EcoBottle Pro demo across all three styles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			console.New(cmd.InOrStdin(), cmd.OutOrStdout(), buildAgent(cfg, flags)).Demo(cmd.Context())
			return nil
		},
	}
}

func newGenerateCmd(flags *globalFlags) *cobra.Command {
	var req generator.SloganRequest
	var style string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate slogans once for the given product",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := generator.ParseStyle(style)
			if err != nil {
				return err
			}
			req.Style = s
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			console.PrintHeading(out, req.Style)
			res := buildAgent(cfg, flags).GenerateSlogans(cmd.Context(), req)
			console.PrintText(out, res)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.ProductName, "product", "", "product or service to market")
	cmd.Flags().StringVar(&req.TargetAudience, "audience", "", "intended customer demographic")
	cmd.Flags().StringVar(&req.Tone, "tone", "", "desired tone (defaults per style)")
	cmd.Flags().StringVar(&style, "style", "professional", "professional, creative or audience_focused")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("audience")
	return cmd
}

func newPromptsCmd() *cobra.Command {
	var product, audience, tone, style string
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Print rendered prompts without calling the completion service",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if style != "" {
				s, err := generator.ParseStyle(style)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, generator.Render(generator.SloganRequest{
					ProductName:    product,
					TargetAudience: audience,
					Tone:           tone,
					Style:          s,
				}))
				return nil
			}
			all := generator.RenderAll(product, audience, tone)
			for _, s := range generator.Styles() {
				fmt.Fprintf(out, "### %s\n\n%s\n\n", s, all[s])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&product, "product", "", "product or service to market")
	cmd.Flags().StringVar(&audience, "audience", "", "intended customer demographic")
	cmd.Flags().StringVar(&tone, "tone", "", "desired tone")
	cmd.Flags().StringVar(&style, "style", "", "render a single style instead of all three")
	return cmd
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !flags.verbose {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			srv, err := server.New(buildAgent(cfg, flags), log.Logger)
			if err != nil {
				return err
			}
			listen := cfg.ServerAddr
			if addr != "" {
				listen = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			httpSrv := &http.Server{
				Addr:              listen,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 15 * time.Second,
			}
			go func() {
				<-ctx.Done()
				shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpSrv.Shutdown(shutCtx)
			}()

			log.Info().Str("addr", listen).Str("provider", cfg.LLM.Provider).Msg("starting web server")
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr / SLOGAN_SERVER_ADDR)")
	return cmd
}
