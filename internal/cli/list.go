package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/medxscan/internal/common"
)

// List prints the user's analysis history, newest first.
func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return nil
	}

	rows, err := a.source.List(ctx, a.user.ID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No analyses yet. Use 'upload' to submit an X-ray.")
		return nil
	}

	for i, row := range rows {
		fmt.Fprintf(a.out, "%d. %s  %s  %-5s  %s\n",
			i+1,
			row.ID,
			row.CreatedAt.Format("2006-01-02"),
			row.XRayType,
			strings.Join(row.DetectedConditions, ", "))
	}
	return nil
}

// Show prints the full detail of one analysis.
func (a *App) Show(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return nil
	}

	an, err := a.source.Get(ctx, a.user.ID, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(a.out, "Analysis not found:", id)
			return nil
		}
		return err
	}

	a.printAnalysis(an)
	return nil
}
