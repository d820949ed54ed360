package cmd

import (
	"github.com/spf13/cobra"
)

var (
	sendMail mailFlags

	sendCmd = &cobra.Command{
		Use:   "send",
		Short: "Send a mail",
		RunE:  RunSend,
	}
)

func init() {
	sendMail.register(sendCmd.Flags())
	rootCmd.AddCommand(sendCmd)
}

func RunSend(cmd *cobra.Command, _ []string) error {
	m, err := sendMail.build(cmd.InOrStdin())
	if err != nil {
		return err
	}

	svc, err := service(cmd)
	if err != nil {
		return err
	}

	return report(cmd, svc.Send(cmd.Context(), m))
}
