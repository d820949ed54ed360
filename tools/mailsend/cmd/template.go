package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailsend/sender"
	"github.com/zostay/go-mailsend/tmpl"
)

var (
	templateFile   string
	templateSpaces []string
	templateParams []string
	templateReq    tmpl.Request
	templateDryRun bool

	templateCmd = &cobra.Command{
		Use:   "template Space.Page",
		Short: "Send a mail built from a stored template",
		Args:  cobra.ExactArgs(1),
		RunE:  RunTemplate,
	}
)

func init() {
	fs := templateCmd.Flags()
	fs.StringVar(&templateFile, "templates", "templates.yaml", "YAML file holding the templates")
	fs.StringSliceVar(&templateSpaces, "spaces", nil, "only allow templates from these spaces")
	fs.StringArrayVar(&templateParams, "param", nil, "template variable as name=value")
	fs.StringVar(&templateReq.From, "from", "", "sender address")
	fs.StringVar(&templateReq.To, "to", "", "comma separated recipients")
	fs.StringVar(&templateReq.Cc, "cc", "", "comma separated carbon copy recipients")
	fs.StringVar(&templateReq.Bcc, "bcc", "", "comma separated blind carbon copy recipients")
	fs.StringVar(&templateReq.Language, "language", tmpl.DefaultLanguage, "template language")
	fs.BoolVar(&templateDryRun, "dry-run", false, "print the message instead of sending it")
	rootCmd.AddCommand(templateCmd)
}

func RunTemplate(cmd *cobra.Command, args []string) error {
	store, err := tmpl.LoadYAMLFile(templateFile)
	if err != nil {
		return err
	}

	var auth tmpl.Authorizer = tmpl.AllowAll{}
	if len(templateSpaces) > 0 {
		auth = tmpl.Spaces(templateSpaces)
	}

	builder := tmpl.NewBuilder(store, auth, tmpl.WithLogger(logger))

	params, err := parsePairs(templateParams)
	if err != nil {
		return err
	}

	req := templateReq
	req.Reference = args[0]
	req.Params = make(map[string]any, len(params))
	for k, val := range params {
		req.Params[k] = val
	}

	svc, err := service(cmd, sender.WithTemplates(builder))
	if err != nil {
		return err
	}

	if !templateDryRun {
		return report(cmd, svc.SendFromTemplate(cmd.Context(), req))
	}

	m, err := builder.Build(cmd.Context(), req)
	if err != nil {
		return err
	}

	msg, err := svc.Build(m)
	if err != nil {
		return err
	}
	defer func() { _ = msg.Close() }()

	_, err = msg.Body.WriteTo(cmd.OutOrStdout())
	return err
}
