package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgroup/internal/config"
	"github.com/goliatone/go-formgroup/pkg/errorbag"
	"github.com/goliatone/go-formgroup/pkg/formdef"
	"github.com/goliatone/go-formgroup/pkg/formgroup"
	"github.com/goliatone/go-formgroup/pkg/render"
	"github.com/goliatone/go-formgroup/pkg/render/template/gotemplate"
)

type renderOptions struct {
	definition  string
	form        string
	errors      string
	config      string
	template    string
	mode        string
	output      string
	interactive bool
}

func newRenderCmd(c *cli) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a form definition, a template, or a definition inside a template",
		Long: `Render a form definition (--definition) to HTML, or a pongo2 template
(--template) that calls open_group/close_group. When both are given the
rendered definition is available to the template as {{ form|safe }}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.definition, "definition", "d", "", "Form definition file (YAML or JSON)")
	cmd.Flags().StringVarP(&opts.form, "form", "f", "", "Form id to render (default: the only form)")
	cmd.Flags().StringVarP(&opts.errors, "errors", "e", "", "Validation errors file (YAML map of field to messages)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "Configuration file")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "pongo2 page template")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "Label mode: wrap|inline (overrides config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (stdout if empty)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for the form when --form is empty")

	return cmd
}

func (c *cli) runRender(cmd *cobra.Command, opts renderOptions) error {
	ctx := commandContext(cmd)

	if opts.definition == "" && opts.template == "" {
		return errors.New("render: --definition or --template is required")
	}

	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	if opts.mode != "" {
		cfg.LabelMode = opts.mode
	}
	groupOptions, err := cfg.GroupOptions(c.logger)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	errs, err := loadErrors(opts.errors)
	if err != nil {
		return err
	}

	var html, title string
	if opts.definition != "" {
		form, err := c.selectForm(ctx, opts)
		if err != nil {
			return err
		}
		groups := formgroup.New(append(slices.Clone(groupOptions), formgroup.WithErrors(errs))...)
		if html, err = form.Render(groups); err != nil {
			return err
		}
		title = form.Title
		c.logger.Debug("rendered form definition", "form", form.ID, "mode", cfg.LabelMode)
	}

	if opts.template != "" {
		html, err = c.renderTemplate(ctx, cfg, opts.template, groupOptions, errs, map[string]any{
			"form":        html,
			"title":       title,
			"form_errors": errs.Form(),
		})
		if err != nil {
			return err
		}
	}

	return c.writeOutput(cmd, opts.output, html)
}

func (c *cli) selectForm(ctx context.Context, opts renderOptions) (formdef.Form, error) {
	doc, err := formdef.LoadFile(opts.definition)
	if err != nil {
		return formdef.Form{}, err
	}

	id := opts.form
	if id == "" && opts.interactive && len(doc.Forms) > 1 {
		if c.picker == nil {
			return formdef.Form{}, errors.New("render: --interactive needs a terminal prompt")
		}
		if id, err = c.picker.Pick(ctx, "Form to render", doc.IDs()); err != nil {
			return formdef.Form{}, err
		}
	}
	return doc.Form(id)
}

func (c *cli) renderTemplate(ctx context.Context, cfg config.Config, path string, groupOptions []formgroup.Option, errs *errorbag.Bag, data map[string]any) (string, error) {
	baseDir, name := cfg.TemplateDir, path
	if baseDir == "" {
		baseDir, name = filepath.Dir(path), filepath.Base(path)
	}

	engineOptions := []gotemplate.Option{gotemplate.WithBaseDir(baseDir)}
	if ext := filepath.Ext(name); ext != "" {
		engineOptions = append(engineOptions, gotemplate.WithExtension(ext))
	}
	engine, err := gotemplate.New(engineOptions...)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	page, err := render.NewPage(engine,
		render.WithLogger(c.logger),
		render.WithGroupOptions(groupOptions...),
	)
	if err != nil {
		return "", err
	}
	return page.Render(ctx, name, data, errs)
}

func (c *cli) writeOutput(cmd *cobra.Command, path, html string) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), html)
		return err
	}
	if err := os.WriteFile(path, []byte(html+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	c.logger.Info("form written", "path", path)
	return nil
}

// loadErrors reads a YAML map of field paths to one message or a list of
// messages. An empty path yields a nil bag, which reports no errors.
func loadErrors(path string) (*errorbag.Bag, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("errors file: %w", err)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("errors file %s: %w", path, err)
	}

	payload := make(map[string][]string, len(raw))
	for key, value := range raw {
		switch value := value.(type) {
		case nil:
		case []any:
			for _, item := range value {
				payload[key] = append(payload[key], fmt.Sprint(item))
			}
		case map[string]any:
			return nil, fmt.Errorf("errors file %s: %q must be a message or a list of messages", path, key)
		default:
			payload[key] = append(payload[key], fmt.Sprint(value))
		}
	}
	return errorbag.FromPayload(payload), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
