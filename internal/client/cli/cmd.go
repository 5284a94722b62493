package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hashedin27-max/GCS-Upload/internal/client/config"
	"github.com/hashedin27-max/GCS-Upload/internal/logging"
)

// NewRootCommand builds the command tree. The bare command enters the
// interactive REPL; `login` and `upload` run one-shot against the persisted
// session state.
func NewRootCommand(log logging.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "gcsup",
		Short:         "Authenticated file uploads to GCS-backed storage",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(log)
			if err != nil {
				return err
			}
			app.Run(cmd.Context())
			return nil
		},
	}

	// The config loader reads these from os.Args itself (defaults, then
	// JSON, then env, then flags); they are registered here so cobra
	// accepts them.
	pf := root.PersistentFlags()
	var sink string
	pf.StringVarP(&sink, "api", "a", "", "base URL of the backend API")
	pf.StringVarP(&sink, "timeout", "t", "", "request timeout (in seconds)")
	pf.StringVarP(&sink, "state-dir", "s", "", "session state directory")
	pf.StringVarP(&sink, "config", "c", "", "path to JSON config file")

	root.AddCommand(newLoginCommand(log))
	root.AddCommand(newUploadCommand(log))
	return root
}

func newApp(log logging.Logger) (*App, error) {
	return NewApp(config.LoadConfig(), log)
}

func newLoginCommand(log logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(log)
			if err != nil {
				return err
			}
			app.session.Restore(cmd.Context())
			return app.Login(cmd.Context())
		},
	}
}

func newUploadCommand(log logging.Logger) *cobra.Command {
	var bucket, path string

	cmd := &cobra.Command{
		Use:   "upload <file> [file...]",
		Short: "Validate and upload files using the persisted session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(log)
			if err != nil {
				return err
			}
			app.session.Restore(cmd.Context())
			if !app.session.IsAuthenticated() {
				return errors.New("not logged in, run 'gcsup login' first")
			}

			if bucket != "" {
				app.target.Bucket = bucket
			}
			if path != "" {
				app.target.DestinationPath = path
			}

			app.addFiles(cmd.Context(), args)
			if len(app.uploader.Selection()) == 0 {
				return errors.New("no files accepted for upload")
			}
			if err := app.uploader.UploadAll(cmd.Context(), app.target); err != nil {
				return err
			}
			fmt.Println(app.uploader.Status())
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "destination bucket (default: first catalog entry)")
	cmd.Flags().StringVar(&path, "path", "", "destination path (default: first catalog entry)")
	return cmd
}
