package dto

import (
	disclosureDomain "github.com/allisson/cardvault/internal/disclosure/domain"
	disclosureUseCase "github.com/allisson/cardvault/internal/disclosure/usecase"
)

// ToStatusResponse converts a folded status to its response DTO.
func ToStatusResponse(status disclosureUseCase.Status) DisclosureStatusResponse {
	response := DisclosureStatusResponse{
		State:  string(status.State),
		CardID: status.CardID,
		Reason: string(status.Reason),
	}
	if status.LastError != nil {
		response.LastError = &LastErrorResponse{
			Code:    status.LastError.Code,
			Message: status.LastError.Message,
		}
	}
	return response
}

// ToCardViewResponse converts a disclosed card view to its response DTO.
func ToCardViewResponse(view *disclosureDomain.CardView) *CardViewResponse {
	if view == nil {
		return nil
	}
	return &CardViewResponse{
		CardID: view.CardID,
		Alias:  view.Alias,
		Holder: view.Holder,
		PAN:    view.PAN,
		CVV:    view.CVV,
		Expiry: view.Expiry,
	}
}
