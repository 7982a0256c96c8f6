package models

type CreateProjectRequest struct {
	GeneratedImageID string  `json:"generated_image_id" binding:"required,uuid" example:"5b1f6a0e-8a3c-4c47-9e0e-2f3c1f6e9a11"`
	CategoryID       int64   `json:"category_id" binding:"required,min=1" example:"1"`
	MaterialID       int64   `json:"material_id" binding:"required,min=1" example:"2"`
	Dimensions       *string `json:"dimensions,omitempty" binding:"omitempty,max=200" example:"200x90x75 cm"`
	Budget           *string `json:"budget,omitempty" binding:"omitempty,max=100" example:"3000-5000 PLN"`
}

type UpdateStatusRequest struct {
	Status ProjectStatus `json:"status" binding:"required,oneof=open in_progress completed closed" example:"completed"`
}

type AcceptProposalRequest struct {
	ProposalID string `json:"proposal_id" binding:"required,uuid"`
}

// SubmitProposalForm is the non-file part of a multipart proposal; the
// optional file travels in the "attachment" field.
type SubmitProposalForm struct {
	Price   float64 `form:"price" binding:"required,gt=0,lte=1000000" example:"2500"`
	Message string  `form:"message" binding:"max=2000"`
}

type UpsertArtisanProfileRequest struct {
	CompanyName       string  `json:"company_name" binding:"required,min=2,max=200" example:"Stolarnia Kowalski"`
	NIP               string  `json:"nip" binding:"required,nip" example:"5260250274"`
	SpecializationIDs []int64 `json:"specialization_ids" binding:"max=20,unique,dive,min=1"`
}

type VisibilityRequest struct {
	IsPublic *bool `json:"is_public" binding:"required"`
}

type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Comment *string `json:"comment,omitempty" binding:"omitempty,max=2000"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt" binding:"required,min=10,max=1000" example:"Oak dining table with hairpin legs for six people"`
}
