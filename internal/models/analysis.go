// Package models defines client-side data models used by the MedXScan CLI.
package models

import "time"

// XRayType classifies the kind of X-ray an analysis was made from.
type XRayType string

const (
	XRayTypeChest XRayType = "chest"
	XRayTypeBone  XRayType = "bone"
)

// Bone sub-regions a bone X-ray can target.
const (
	BoneRegionHand     = "hand"
	BoneRegionWrist    = "wrist"
	BoneRegionElbow    = "elbow"
	BoneRegionShoulder = "shoulder"
	BoneRegionKnee     = "knee"
	BoneRegionAnkle    = "ankle"
	BoneRegionSpine    = "spine"
)

// ConditionNormal is the label shared by both vocabularies for a clean scan.
const ConditionNormal = "Normal"

// ChestConditions is the fixed vocabulary of chest X-ray labels.
var ChestConditions = []string{ConditionNormal, "Pneumonia", "COVID-19", "Tuberculosis"}

// BoneConditions is the fixed vocabulary of bone X-ray labels.
var BoneConditions = []string{ConditionNormal, "Fracture", "Osteoporosis", "Osteoarthritis", "Dislocation"}

// ConditionsFor returns the condition vocabulary for the given X-ray type.
func ConditionsFor(t XRayType) []string {
	if t == XRayTypeBone {
		return BoneConditions
	}
	return ChestConditions
}

// Analysis is one uploaded X-ray plus its resulting condition labels and
// metadata. Records are immutable once created and are never deleted; they
// are scoped per user by filtering on UserID at read time.
type Analysis struct {
	// ID is a globally unique identifier for the analysis.
	ID string

	// UserID is the owning user's identifier.
	UserID string

	// ImageRef is a local path or URL pointing at the uploaded image.
	ImageRef string

	// XRayType is chest or bone.
	XRayType XRayType

	// BoneRegion is set only for bone X-rays.
	BoneRegion string

	// Symptoms is the free-text symptom description the user entered.
	// When the user entered nothing, it stays empty and is persisted as
	// NULL, not as an empty string.
	Symptoms string

	// DetectedConditions holds the condition labels for this scan.
	DetectedConditions []string

	// CreatedAt is the submission time in UTC.
	CreatedAt time.Time

	// ReportRef is the server-side path of the generated report document,
	// empty for locally generated records.
	ReportRef string

	// ReportGenerated indicates a report document exists for this record.
	ReportGenerated bool
}

// IsNormal reports whether the analysis detected nothing but a normal scan.
func (a *Analysis) IsNormal() bool {
	return len(a.DetectedConditions) == 1 && a.DetectedConditions[0] == ConditionNormal
}
