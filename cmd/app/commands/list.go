package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
	"github.com/celox/clipvault/internal/clips/http/dto"
	clipsUseCase "github.com/celox/clipvault/internal/clips/usecase"
)

const previewLength = 60

// RunList prints the history, pinned entries first, optionally filtered by a
// substring query.
func RunList(
	ctx context.Context,
	clipUseCase clipsUseCase.ClipUseCase,
	writer io.Writer,
	query string,
	limit, offset int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if limit < 0 || offset < 0 {
		return fmt.Errorf("limit and offset must not be negative")
	}

	entries, err := clipUseCase.List(ctx, clipsDomain.ListOptions{
		Query:  strings.TrimSpace(query),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return fmt.Errorf("failed to list clips: %w", err)
	}

	if format == "json" {
		total, err := clipUseCase.Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count clips: %w", err)
		}
		return writeJSON(writer, dto.MapClipsToListResponse(entries, total))
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(writer, "No clips")
		return nil
	}

	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tPINNED\tCAPTURED\tCONTENT")
	for _, entry := range entries {
		pinned := ""
		if entry.Pinned {
			pinned = "*"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			entry.ID,
			pinned,
			entry.CapturedAt().Local().Format(time.DateTime),
			preview(entry.Content),
		)
	}
	return tw.Flush()
}

// preview collapses whitespace and truncates content to one table cell.
func preview(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	runes := []rune(flat)
	if len(runes) <= previewLength {
		return flat
	}
	return string(runes[:previewLength-1]) + "…"
}
