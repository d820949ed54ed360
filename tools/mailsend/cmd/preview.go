package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailsend/message/walk"
)

var (
	previewMail    mailFlags
	previewOutline bool

	previewCmd = &cobra.Command{
		Use:   "preview",
		Short: "Print the message that send would deliver, without sending it",
		RunE:  RunPreview,
	}
)

func init() {
	previewMail.register(previewCmd.Flags())
	previewCmd.Flags().BoolVar(&previewOutline, "outline", false, "print the MIME structure only")
	rootCmd.AddCommand(previewCmd)
}

func RunPreview(cmd *cobra.Command, _ []string) error {
	m, err := previewMail.build(cmd.InOrStdin())
	if err != nil {
		return err
	}

	svc, err := service(cmd)
	if err != nil {
		return err
	}

	msg, err := svc.Build(m)
	if err != nil {
		return err
	}
	defer func() { _ = msg.Close() }()

	for _, w := range msg.Warnings {
		logger.Warn("message degraded", "warning", w)
	}

	if previewOutline {
		return walk.Outline(cmd.OutOrStdout(), msg.Body)
	}

	_, err = msg.Body.WriteTo(cmd.OutOrStdout())
	return err
}
