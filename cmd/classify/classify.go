// Package classify implements the one-shot classify command.
package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/email-classifier/internal/api"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/bootstrap"
	"github.com/jonesrussell/north-cloud/email-classifier/internal/domain"
)

// Command returns the classify command. opts is read when the command runs.
func Command(opts *bootstrap.Options) *cobra.Command {
	var (
		file string
		text string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one email and print the analysis as JSON",
		Long: `Classify one email read from --text, --file (.txt or .pdf) or standard input,
and print the same JSON body POST /analyze returns.`,
		Example: `  email-classifier classify --text "Bom dia, qual o status do meu pedido?"
  email-classifier classify --file pedido.pdf
  cat email.txt | email-classifier classify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o := *opts
			o.Console = true
			return run(cmd, o, file, text)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the email from a .txt or .pdf file")
	cmd.Flags().StringVarP(&text, "text", "t", "", "email text")
	cmd.MarkFlagsMutuallyExclusive("file", "text")

	return cmd
}

func run(cmd *cobra.Command, opts bootstrap.Options, file, text string) error {
	cfg, logger, err := bootstrap.Setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	comps, err := bootstrap.NewComponents(cfg, logger, nil)
	if err != nil {
		return fmt.Errorf("setup classifier: %w", err)
	}
	defer func() { _ = comps.Close() }()

	switch {
	case file != "":
		text, err = readFile(comps, file, cfg.Service.MaxUploadBytes)
	case text == "":
		text, err = readAll(cmd.InOrStdin(), cfg.Service.MaxUploadBytes)
	}
	if err != nil {
		return err
	}

	analysis, err := comps.Classifier.Classify(cmd.Context(), text)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(api.NewAnalyzeResponse(analysis))
}

func readFile(comps *bootstrap.Components, path string, limit int64) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if limit > 0 && info.Size() > limit {
		return "", domain.ErrFileTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return comps.Extractor.Extract(filepath.Base(path), data)
}

func readAll(r io.Reader, limit int64) (string, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", domain.ErrFileTooLarge
	}
	return string(data), nil
}

// ExitCode maps input errors to 2 and everything else to 1.
func ExitCode(err error) int {
	if _, ok := domain.AsInputError(err); ok {
		return 2
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return 2
	}
	return 1
}
