package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/kpruthvi/portfolio/internal/api/constants"
	"github.com/kpruthvi/portfolio/internal/api/dto/common"
	"github.com/kpruthvi/portfolio/internal/api/dto/v1/contact"
	"github.com/kpruthvi/portfolio/internal/service"
	"github.com/kpruthvi/portfolio/internal/utils"

	"github.com/gin-gonic/gin"
)

// Submitter runs the relay pipeline for one submission
type Submitter interface {
	Submit(ctx context.Context, sub service.Submission, token, remoteIP string) error
}

type ContactHandler struct {
	contactService Submitter
}

func NewContactHandler(contactService Submitter) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	// Get submission from context (set by validation middleware)
	data, exists := c.Get(constants.ContextKeySubmission)
	if !exists {
		utils.HandleAPIError(c, errors.New("submission not found in context"), http.StatusInternalServerError, common.MsgUnexpected)
		return
	}

	req, ok := data.(*contact.SubmissionRequest)
	if !ok {
		utils.HandleAPIError(c, errors.New("invalid submission type in context"), http.StatusInternalServerError, common.MsgUnexpected)
		return
	}

	err := h.contactService.Submit(c.Request.Context(), req.Submission(), req.Token, utils.GetRealIP(c))

	switch service.CategoryOf(err) {
	case service.CategoryNone:
		utils.HandleSuccess(c, contact.SubmissionResponse{
			Success: true,
			Message: common.MsgSent,
		})
	case service.CategoryValidation:
		utils.HandleErrorMessage(c, http.StatusBadRequest, common.MsgFieldsRequired)
	case service.CategoryVerification:
		utils.HandleErrorMessage(c, http.StatusBadRequest, common.MsgVerificationFailed)
	case service.CategoryDelivery:
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.MsgDeliveryFailed)
	default:
		utils.HandleAPIError(c, err, http.StatusInternalServerError, common.MsgUnexpected)
	}
}

// MethodNotAllowed answers any unsupported method on a known path
func MethodNotAllowed(c *gin.Context) {
	utils.HandleErrorMessage(c, http.StatusMethodNotAllowed, common.MsgMethodNotAllowed)
}

// NotFound answers unknown paths
func NotFound(c *gin.Context) {
	utils.HandleErrorMessage(c, http.StatusNotFound, common.MsgNotFound)
}
