package application

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"soundreel-backend/internal/domains/application/model"
)

// SubmitApplicationRequest is the creator elevation request body.
type SubmitApplicationRequest struct {
	ArtistName        string  `json:"artist_name"`
	ApplicationReason string  `json:"application_reason"`
	PortfolioURL      *string `json:"portfolio_url"`
}

func (r SubmitApplicationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ArtistName,
			validation.Required,
			validation.Length(2, 100),
		),
		validation.Field(&r.ApplicationReason,
			validation.Required,
			validation.Length(50, 2000).Error("must be between 50 and 2000 characters"),
		),
		validation.Field(&r.PortfolioURL,
			validation.When(r.PortfolioURL != nil && *r.PortfolioURL != "", is.URL),
		),
	)
}

// ReviewApplicationRequest decides a pending application.
type ReviewApplicationRequest struct {
	Decision model.Status `json:"decision"`
	Notes    *string      `json:"notes"`
}

func (r ReviewApplicationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Decision,
			validation.Required,
			validation.In(model.StatusApproved, model.StatusRejected),
		),
		validation.Field(&r.Notes,
			validation.When(r.Notes != nil, validation.Length(0, 1000)),
		),
	)
}

// ListApplicationsRequest filters the admin listing. The pending queue is
// served oldest-first so review order matches submission order; everything
// else lists newest-first.
type ListApplicationsRequest struct {
	Status *model.Status `form:"status"`
	Page   int           `form:"page"`
	Limit  int           `form:"limit"`
}

func (r *ListApplicationsRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
}

func (r ListApplicationsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.When(r.Status != nil, validation.In(model.StatusPending, model.StatusApproved, model.StatusRejected)),
		),
	)
}

// ReviewOutcome pairs the reviewed application with the applicant's email so
// the service can send the notification without a second lookup.
type ReviewOutcome struct {
	Application    *model.Application
	ApplicantEmail string
}
