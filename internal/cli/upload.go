package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/medxscan/internal/api"
	"github.com/dmitrijs2005/medxscan/internal/asyncop"
	"github.com/dmitrijs2005/medxscan/internal/models"
	"github.com/dmitrijs2005/medxscan/internal/services"
)

// Upload collects the submission inputs and runs the analysis as an async
// operation: the prompt returns immediately with a progress line and the
// result (or failure) is printed when the operation settles.
func (a *App) Upload(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return nil
	}

	var imagePath, symptoms string
	symptomsGiven := false
	if len(args) > 0 {
		imagePath = args[0]
		if len(args) > 1 {
			symptoms = strings.Join(args[1:], " ")
			symptomsGiven = true
		}
	} else {
		p, err := getSimpleText(a.reader, "Path to X-ray image", a.out)
		if err != nil {
			return err
		}
		imagePath = p
	}

	xrayType, err := GetChoice(a.reader, "X-ray type",
		[]string{string(models.XRayTypeChest), string(models.XRayTypeBone)}, a.out)
	if err != nil {
		return err
	}

	var boneRegion string
	if models.XRayType(xrayType) == models.XRayTypeBone {
		boneRegion, err = GetChoice(a.reader, "Bone region", []string{
			models.BoneRegionHand, models.BoneRegionWrist, models.BoneRegionElbow,
			models.BoneRegionShoulder, models.BoneRegionKnee, models.BoneRegionAnkle,
			models.BoneRegionSpine,
		}, a.out)
		if err != nil {
			return err
		}
	}

	if !symptomsGiven {
		symptoms, err = GetMultiline(a.reader, "Describe symptoms (optional)", a.out)
		if err != nil {
			return err
		}
	}

	req := services.SubmitRequest{
		ImagePath:  imagePath,
		XRayType:   models.XRayType(xrayType),
		BoneRegion: boneRegion,
		Symptoms:   symptoms,
	}

	op := asyncop.New(
		asyncop.WithOnSuccess(func(result models.Analysis) {
			fmt.Fprintln(a.out, "Analysis complete:")
			a.printAnalysis(&result)
		}),
		asyncop.WithOnError[models.Analysis](func(msg string) {
			fmt.Fprintf(a.out, "Analysis failed: %s\n", msg)
		}),
	)

	fmt.Fprintln(a.out, "Analyzing X-ray...")
	op.Execute(ctx, func(ctx context.Context) (*api.Response[models.Analysis], error) {
		result, err := a.source.Submit(ctx, a.user.ID, req)
		if err != nil {
			return nil, err
		}
		return api.Ok(200, *result), nil
	})
	op.Wait()
	return nil
}

func (a *App) printAnalysis(an *models.Analysis) {
	fmt.Fprintf(a.out, "  ID:         %s\n", an.ID)
	fmt.Fprintf(a.out, "  Date:       %s\n", an.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(a.out, "  Type:       %s\n", an.XRayType)
	if an.BoneRegion != "" {
		fmt.Fprintf(a.out, "  Region:     %s\n", an.BoneRegion)
	}
	fmt.Fprintf(a.out, "  Conditions: %s\n", strings.Join(an.DetectedConditions, ", "))
	if an.Symptoms != "" {
		fmt.Fprintf(a.out, "  Symptoms:   %s\n", an.Symptoms)
	}
	if an.ReportGenerated {
		fmt.Fprintln(a.out, "  Report:     available")
	}
}
