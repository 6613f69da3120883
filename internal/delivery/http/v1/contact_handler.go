package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirtansukhadiya/logified-prod/internal/delivery/http/middleware"
	"github.com/kirtansukhadiya/logified-prod/internal/delivery/http/response"
	"github.com/kirtansukhadiya/logified-prod/internal/domain"
	"github.com/kirtansukhadiya/logified-prod/internal/site"
	"github.com/kirtansukhadiya/logified-prod/pkg/apperror"
	"github.com/kirtansukhadiya/logified-prod/pkg/security"
	"github.com/kirtansukhadiya/logified-prod/pkg/validation"
)

type ContactHandler struct {
	contactUC  domain.ContactUsecase
	site       *site.Site
	events     *security.EventLogger
	msgSent    string
	msgFailure string
}

// NewContactHandler registers the contact routes (public, no auth required).
// supportEmail, when set, is offered to visitors as a fallback after a failed send.
func NewContactHandler(r *gin.RouterGroup, contactUC domain.ContactUsecase, s *site.Site, events *security.EventLogger, supportEmail string) {
	if events == nil {
		events = security.Nop()
	}
	handler := &ContactHandler{
		contactUC: contactUC,
		site:      s,
		events:    events,
		msgSent: fmt.Sprintf("Thank you for contacting %s! Your message has been sent successfully. "+
			"We'll get back to you within 24 hours.", s.Name),
		msgFailure: "Sorry, there was an error sending your message. Please try again later.",
	}
	if supportEmail != "" {
		handler.msgFailure = fmt.Sprintf("Sorry, there was an error sending your message. "+
			"Please try again or contact us directly at %s.", supportEmail)
	}

	r.POST("/contact", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates the submission and emails it to the site owner. Accepts JSON or form-encoded bodies.
// @Tags         contact
// @Accept       json,x-www-form-urlencoded
// @Produce      json,html
// @Param        contact  body      domain.ContactSubmission  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactSubmission
	if err := c.ShouldBind(&req); err != nil {
		h.reject(c, domain.ContactSubmission{}, http.StatusBadRequest, validation.MessageRequiredFields,
			apperror.BadRequest(validation.MessageRequiredFields, err))
		return
	}
	sub := domain.NewContactSubmission(req.Name, req.Email, req.Phone, req.Message)

	ctx := c.Request.Context()
	ip, ua, requestID := c.ClientIP(), c.Request.UserAgent(), c.GetString(middleware.RequestIDKey)

	err := h.contactUC.Submit(ctx, sub)
	switch {
	case err == nil:
		h.events.LogContactSubmitted(ctx, sub.Email, ip, ua, requestID)
		if response.WantsHTML(c) {
			c.HTML(http.StatusOK, site.LayoutTemplate, h.site.ContactView(*sub, true, h.msgSent))
			return
		}
		response.Success(c, http.StatusOK, h.msgSent, nil)

	case errors.Is(err, domain.ErrInvalidSubmission):
		reason := validation.MessageRequiredFields
		var cerr *validation.ContactError
		if errors.As(err, &cerr) {
			reason = cerr.Reason
		}
		h.events.LogContactRejected(ctx, sub.Email, ip, ua, requestID, reason)
		h.reject(c, *sub, http.StatusBadRequest, reason, apperror.BadRequest(reason, nil))

	case errors.Is(err, domain.ErrDispatchFailed):
		h.events.LogDeliveryFailed(ctx, sub.Email, ip, ua, requestID, err)
		h.reject(c, *sub, http.StatusInternalServerError, h.msgFailure, apperror.Internal(h.msgFailure, err))

	default:
		// Unexpected: ErrorHandler logs the cause and answers with a generic 500.
		if response.WantsHTML(c) {
			c.HTML(http.StatusInternalServerError, site.LayoutTemplate, h.site.View(h.site.Special(site.SlugError)))
		}
		_ = c.Error(err)
	}
}

// reject records appErr for ErrorHandler and, for browser form posts,
// re-renders the contact page with the submitted values and the reason.
func (h *ContactHandler) reject(c *gin.Context, values domain.ContactSubmission, status int, message string, appErr *apperror.AppError) {
	if response.WantsHTML(c) {
		c.HTML(status, site.LayoutTemplate, h.site.ContactView(values, false, message))
	}
	_ = c.Error(appErr)
}
