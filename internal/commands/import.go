package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgroup/pkg/formdef"
)

type importOptions struct {
	source      string
	operation   string
	output      string
	interactive bool
}

func newImportCmd(c *cli) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Generate a form definition from an OpenAPI operation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.source, "source", "s", "", "OpenAPI document path, or - for stdin (required)")
	cmd.Flags().StringVar(&opts.operation, "operation", "", "Operation id (default: the document's only operation)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for the operation when --operation is empty")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func (c *cli) runImport(cmd *cobra.Command, opts importOptions) error {
	ctx := commandContext(cmd)

	data, err := readSource(cmd.InOrStdin(), opts.source)
	if err != nil {
		return err
	}

	operationID := strings.TrimSpace(opts.operation)
	if operationID == "" {
		ids, err := formdef.OperationIDs(ctx, data)
		if err != nil {
			return err
		}
		switch {
		case len(ids) == 1:
			operationID = ids[0]
		case opts.interactive && len(ids) > 0 && c.picker != nil:
			if operationID, err = c.picker.Pick(ctx, "Operation to import", ids); err != nil {
				return err
			}
		default:
			return fmt.Errorf("import: --operation is required (available: %s)", strings.Join(ids, ", "))
		}
	}

	form, err := formdef.FromOpenAPI(ctx, data, operationID)
	if err != nil {
		return err
	}
	c.logger.Debug("imported operation", "operation", operationID, "groups", len(form.Groups))

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(formdef.Document{Forms: []formdef.Form{form}}); err != nil {
		return fmt.Errorf("import: encode definition: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("import: encode definition: %w", err)
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("import: write output: %w", err)
	}
	c.logger.Info("definition written", "path", opts.output)
	return nil
}

func readSource(stdin io.Reader, source string) ([]byte, error) {
	source = strings.TrimSpace(source)
	switch source {
	case "":
		return nil, errors.New("import: --source is required")
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("import: read stdin: %w", err)
		}
		return data, nil
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("import: read source: %w", err)
		}
		return data, nil
	}
}
