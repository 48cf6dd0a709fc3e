package dto

import (
	"mime/multipart"
	"rental/internal/domains/inspection/model"
	"rental/shared/constant"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"
	"rental/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type Damage struct {
	Location    string   `json:"location"             validate:"required,max=255"`
	Description string   `json:"description"          validate:"max=1000"`
	Severity    string   `json:"severity"             validate:"omitempty,oneof=minor moderate severe"`
	RepairCost  *float64 `json:"repairCost,omitempty" validate:"omitempty,gte=0"`
}

func toDamages(items []Damage) model.Damages {
	damages := make(model.Damages, len(items))
	for i, item := range items {
		damages[i] = model.Damage(item)
	}

	return damages
}

func fromDamages(damages model.Damages) []Damage {
	items := make([]Damage, len(damages))
	for i, damage := range damages {
		items[i] = Damage(damage)
	}

	return items
}

type Photo struct {
	Angle string `json:"angle" validate:"required,eq=main"`
	URL   string `json:"url"   validate:"required,url"`
}

type CreateInspectionRequest struct {
	BookingID string  `json:"bookingId" validate:"required,max=64"`
	Type      string  `json:"type"      validate:"required,oneof=pre-rental post-rental"`
	Photos    []Photo `json:"photos"    validate:"required,len=1,dive"`
}

func (c *CreateInspectionRequest) ToModel(user string, now time.Time) model.Inspection {
	return model.Inspection{
		ID:               uuid.NewString(),
		BookingID:        c.BookingID,
		Type:             model.Type(c.Type),
		PhotoURL:         c.Photos[0].URL,
		PhotoAngle:       c.Photos[0].Angle,
		DetectedDamages:  model.Damages{},
		ConfirmedDamages: model.Damages{},
		Status:           model.StatusPending,
		Metadata:         gModel.NewMetadata(user, now),
	}
}

type AnalysisRequest struct {
	DetectedDamages   []Damage `json:"detectedDamages"   validate:"dive"`
	OverallAssessment string   `json:"overallAssessment" validate:"max=2000"`
}

func (a *AnalysisRequest) Damages() model.Damages {
	return toDamages(a.DetectedDamages)
}

func (a *AnalysisRequest) Fields(user string) map[string]any {
	return map[string]any{
		model.FieldDetectedDamages:   a.Damages(),
		model.FieldOverallAssessment: a.OverallAssessment,
		model.FieldStatus:            model.StatusAnalyzed,
		constant.FieldModifiedAt:     timezone.Now(),
		constant.FieldModifiedBy:     user,
	}
}

type ReviewRequest struct {
	ConfirmedDamages []Damage `json:"confirmedDamages" validate:"dive"`
	TotalRepairCost  *float64 `json:"totalRepairCost"  validate:"required,gte=0"`
	Notes            string   `json:"notes"            validate:"max=2000"`
}

func (r *ReviewRequest) Cost() float64 {
	if r.TotalRepairCost == nil {
		return 0
	}

	return *r.TotalRepairCost
}

func (r *ReviewRequest) Damages() model.Damages {
	return toDamages(r.ConfirmedDamages)
}

func (r *ReviewRequest) Fields(user string, now time.Time) map[string]any {
	return map[string]any{
		model.FieldConfirmedDamages: r.Damages(),
		model.FieldTotalRepairCost:  r.Cost(),
		model.FieldReviewNotes:      r.Notes,
		model.FieldReviewedBy:       user,
		model.FieldReviewedAt:       now,
		model.FieldStatus:           model.StatusReviewed,
		constant.FieldModifiedAt:    now,
		constant.FieldModifiedBy:    user,
	}
}

type UploadPhotoRequest struct {
	Photo     *multipart.FileHeader `json:"photo" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	PhotoFile multipart.File        `json:"-"`
}

type PhotoResponse struct {
	URL string `json:"url"`
}

type InspectionResponse struct {
	ID                string   `json:"id"`
	BookingID         string   `json:"bookingId"`
	Type              string   `json:"type"`
	Photos            []Photo  `json:"photos"`
	DetectedDamages   []Damage `json:"detectedDamages"`
	OverallAssessment string   `json:"overallAssessment"`
	ConfirmedDamages  []Damage `json:"confirmedDamages"`
	TotalRepairCost   float64  `json:"totalRepairCost"`
	ReviewNotes       string   `json:"reviewNotes,omitempty"`
	ReviewedBy        *string  `json:"reviewedBy,omitempty"`
	ReviewedAt        *string  `json:"reviewedAt,omitempty"`
	Status            string   `json:"status"`
	gDto.Metadata
}

func (r *InspectionResponse) FromModel(model model.Inspection) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Type = string(model.Type)
	r.Photos = []Photo{{Angle: model.PhotoAngle, URL: model.PhotoURL}}
	r.DetectedDamages = fromDamages(model.DetectedDamages)
	r.OverallAssessment = model.OverallAssessment
	r.ConfirmedDamages = fromDamages(model.ConfirmedDamages)
	r.TotalRepairCost = model.TotalRepairCost
	r.ReviewNotes = model.ReviewNotes
	r.ReviewedBy = model.ReviewedBy
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)

	if model.ReviewedAt != nil {
		reviewedAt := timezone.Format(*model.ReviewedAt, constant.DateFormat)
		r.ReviewedAt = &reviewedAt
	}
}
