package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/medxscan/internal/common"
	"github.com/dmitrijs2005/medxscan/internal/filex"
	"github.com/dmitrijs2005/medxscan/internal/models"
)

// Report shows the medical report for one analysis. When the backend is
// reachable the server-generated report is fetched; otherwise (and always
// in mock mode) a report is rendered from the local record.
func (a *App) Report(ctx context.Context, id string) error {
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

	if a.Mode == ModeOnline {
		resp, err := a.api.Report(ctx, id)
		if err != nil {
			fmt.Fprintf(a.out, "Could not fetch report: %v\n", err)
			return nil
		}
		if !resp.Success || resp.Data == nil {
			fmt.Fprintf(a.out, "Report unavailable: %s\n", resp.Error)
			return nil
		}
		pretty, err := json.MarshalIndent(resp.Data, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, string(pretty))
		return nil
	}

	fmt.Fprint(a.out, renderReport(an))
	return nil
}

// Download saves the report for one analysis into the configured download
// directory. Online mode fetches the server document; otherwise a locally
// rendered text report is written.
func (a *App) Download(ctx context.Context, id string) error {
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

	dir, err := filex.EnsureDir(a.config.DownloadDir)
	if err != nil {
		return err
	}

	if a.Mode == ModeOnline && an.ReportRef != "" {
		saved, err := a.api.DownloadReport(ctx, an.ReportRef, dir)
		if err != nil {
			fmt.Fprintf(a.out, "Download failed: %v\n", err)
			return nil
		}
		fmt.Fprintln(a.out, "Report saved to", saved)
		return nil
	}

	dest := filepath.Join(dir, an.ID+".txt")
	if err := os.WriteFile(dest, []byte(renderReport(an)), 0o660); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintln(a.out, "Report saved to", dest)
	return nil
}

// renderReport formats an analysis as a plain-text medical report.
func renderReport(an *models.Analysis) string {
	var b strings.Builder
	b.WriteString("=== X-Ray Analysis Report ===\n")
	fmt.Fprintf(&b, "Analysis ID: %s\n", an.ID)
	fmt.Fprintf(&b, "Date:        %s\n", an.CreatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "X-ray type:  %s\n", an.XRayType)
	if an.BoneRegion != "" {
		fmt.Fprintf(&b, "Region:      %s\n", an.BoneRegion)
	}
	if an.Symptoms != "" {
		fmt.Fprintf(&b, "Symptoms:    %s\n", an.Symptoms)
	}
	b.WriteString("\nFindings:\n")
	for _, c := range an.DetectedConditions {
		fmt.Fprintf(&b, "  - %s\n", c)
	}
	if an.IsNormal() {
		b.WriteString("\nNo abnormalities detected.\n")
	} else {
		b.WriteString("\nPlease consult a medical professional for interpretation.\n")
	}
	return b.String()
}
