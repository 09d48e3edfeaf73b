package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/isaacphi/promptcheck/internal/appState"
	"github.com/isaacphi/promptcheck/internal/domain"
	promptpkg "github.com/isaacphi/promptcheck/internal/prompt"
	"github.com/isaacphi/promptcheck/internal/render"
	"github.com/isaacphi/promptcheck/internal/toolchoice"
)

func runAdd(ctx context.Context, m *promptpkg.Manager, out io.Writer, path string) error {
	p, err := promptpkg.ReadFile(path)
	if err != nil {
		return err
	}

	version, err := m.Save(ctx, p)
	if err != nil {
		fmt.Fprint(out, render.Report(path, err))
		return fmt.Errorf("prompt %s was not stored", path)
	}

	fmt.Fprintf(out, "Stored %s as version %s\n", version.Name, version.ID.String()[:8])
	return nil
}

func runList(ctx context.Context, m *promptpkg.Manager, out io.Writer, name string, limit int) error {
	var (
		versions []*domain.PromptVersion
		err      error
	)
	if name != "" {
		versions, err = m.History(ctx, name)
		if limit > 0 && len(versions) > limit {
			versions = versions[:limit]
		}
	} else {
		versions, err = m.List(ctx, limit)
	}
	if err != nil {
		return fmt.Errorf("failed to list prompt versions: %w", err)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCreated\tName\tDescription")
	for _, v := range versions {
		description := v.Description
		if len(description) > 50 {
			description = description[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			v.ID.String()[:8],
			v.CreatedAt.Format(time.RFC822),
			v.Name,
			description,
		)
	}
	return w.Flush()
}

// displaySettings reads the configured display mode and width; flagMode wins
// over the configured mode.
func displaySettings(flagMode string) (render.Mode, int, error) {
	mode, width := render.ModeMarkdown, 80
	if app, ok := appState.TryGet(); ok {
		mode, width = render.Mode(app.Config.Render.Mode), app.Config.Render.Width
	}
	if flagMode != "" {
		parsed, err := render.ParseMode(flagMode)
		if err != nil {
			return "", 0, err
		}
		mode = parsed
	}
	return mode, width, nil
}

func runShow(ctx context.Context, m *promptpkg.Manager, out io.Writer, id, flagMode string) error {
	mode, width, err := displaySettings(flagMode)
	if err != nil {
		return err
	}

	loaded, err := m.Find(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load prompt version: %w", err)
	}
	v := loaded.Version

	fmt.Fprintf(out, "%s (version %s, created %s)\n", v.Name, v.ID.String()[:8], v.CreatedAt.Format(time.RFC822))
	if v.Description != "" {
		fmt.Fprintln(out, v.Description)
	}
	fmt.Fprintln(out)

	body, err := render.Block(v.Template, mode, width)
	if err != nil {
		return err
	}
	fmt.Fprint(out, body)

	if len(loaded.Prompt.Tools) > 0 {
		fmt.Fprintln(out, "\nTools:")
		for _, tool := range loaded.Prompt.Tools {
			fmt.Fprintf(out, "  %s\t%s\n", tool.Name, tool.Description)
		}
	}

	fmt.Fprintf(out, "\nTool choice: %s\n", toolchoice.Describe(loaded.ToolChoice))
	if loaded.Fallback {
		fmt.Fprint(out, render.Report("stored tool choice replaced by default", loaded.Issues))
	}
	return nil
}

func runDelete(ctx context.Context, m *promptpkg.Manager, in io.Reader, out io.Writer, id string, force bool) error {
	v, err := m.Resolve(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find prompt version: %w", err)
	}

	fmt.Fprintf(out, "About to delete prompt version %s:\n", v.ID.String()[:8])
	fmt.Fprintf(out, "Name: %s\n", v.Name)
	fmt.Fprintf(out, "Created: %s\n", v.CreatedAt.Format(time.RFC822))

	if !force {
		fmt.Fprint(out, "\nAre you sure you want to delete this version? [y/N] ")
		response, _ := bufio.NewReader(in).ReadString('\n')

		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Operation cancelled")
			return nil
		}
	}

	if _, err := m.Delete(ctx, v.ID.String()); err != nil {
		return fmt.Errorf("failed to delete prompt version: %w", err)
	}

	fmt.Fprintln(out, "Prompt version deleted successfully")
	return nil
}
