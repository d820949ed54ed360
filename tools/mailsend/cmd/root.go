package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zostay/go-mailsend/config"
	"github.com/zostay/go-mailsend/sender"
	"github.com/zostay/go-mailsend/transport"
	"github.com/zostay/go-mailsend/transport/ses"
)

var (
	rootCmd = &cobra.Command{
		Use:               "mailsend",
		Short:             "Compose, preview and send mail",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	v      = viper.New()
	logger = slog.Default()
)

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"smtp-server":          "smtp_server",
	"smtp-port":            "smtp_port",
	"smtp-server-username": "smtp_server_username",
	"smtp-server-password": "smtp_server_password",
	"extra-properties":     "extra_properties",
	"smtp-timeout":         "smtp_timeout",
	"ses-region":           "ses_region",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "configuration file (yaml, toml or json)")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.String("log-format", "text", "log format: text or json")
	pf.Bool("env", false, "read transport settings from MAILSEND_* environment variables instead")
	pf.StringSlice("dotenv", nil, ".env files to load with --env")
	pf.String("transport", "smtp", "transport to deliver with: smtp or ses")

	pf.String("smtp-server", "", "SMTP server host")
	pf.String("smtp-port", "", "SMTP server port")
	pf.String("smtp-server-username", "", "SMTP username")
	pf.String("smtp-server-password", "", "SMTP password")
	pf.String("extra-properties", "", "extra transport properties, one key=value per line")
	pf.Duration("smtp-timeout", 0, "timeout for each SMTP command")
	pf.String("ses-region", "", "AWS region for the ses transport")

	for flag, key := range flagKeys {
		cobra.CheckErr(v.BindPFlag(key, pf.Lookup(flag)))
	}

	v.SetEnvPrefix("MAILSEND")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Execute runs the command line.
func Execute() {
	err := rootCmd.Execute()
	cobra.CheckErr(err)
}

func setup(cmd *cobra.Command, _ []string) error {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("bad --log-level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "text":
		logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	case "json":
		logger = slog.New(slog.NewJSONHandler(os.Stderr, opts))
	default:
		return fmt.Errorf("bad --log-format %q: must be text or json", format)
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}

	return nil
}

func source(cmd *cobra.Command) config.Source {
	if useEnv, _ := cmd.Flags().GetBool("env"); useEnv {
		dotenv, _ := cmd.Flags().GetStringSlice("dotenv")
		return &config.Env{DotEnv: dotenv}
	}
	return config.NewViper(v)
}

func dialer(cmd *cobra.Command) (transport.Dialer, error) {
	name, _ := cmd.Flags().GetString("transport")
	switch name {
	case "smtp":
		return &transport.SMTPDialer{Logger: logger}, nil
	case "ses":
		return &ses.Dialer{Logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", name)
	}
}

func service(cmd *cobra.Command, opts ...sender.Option) (*sender.Service, error) {
	d, err := dialer(cmd)
	if err != nil {
		return nil, err
	}

	opts = append([]sender.Option{
		sender.WithLogger(logger),
		sender.WithDialer(d),
	}, opts...)

	return sender.New(source(cmd), opts...), nil
}

// report prints the outcome of a send and turns failure into an error.
func report(cmd *cobra.Command, res sender.Result) error {
	for _, w := range res.Warnings {
		logger.Warn("sent with problems", "warning", w)
	}

	if !res.OK() {
		if res.Misconfigured() {
			return fmt.Errorf("mail transport is misconfigured: %w", res.Err)
		}
		return res.Err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "sent")
	return nil
}
