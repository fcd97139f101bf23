package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/inboundhq/domainstack/interfaces"
	er "github.com/inboundhq/domainstack/internal/errors"
	"github.com/inboundhq/domainstack/internal/tracing"
	"github.com/inboundhq/domainstack/internal/utils"
)

type DomainsHandler struct {
	domainService interfaces.DomainService
	dnsService    interfaces.DNSService
}

func NewDomainsHandler(domainService interfaces.DomainService, dnsService interfaces.DNSService) *DomainsHandler {
	return &DomainsHandler{
		domainService: domainService,
		dnsService:    dnsService,
	}
}

// Register runs the mail-safety precheck and creates the domain record.
func (h *DomainsHandler) Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainsHandler.Register")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		domain := c.Param("domain")
		userID := utils.GetUserIdFromContext(ctx)

		safety, err := h.domainService.RegisterDomain(ctx, domain, userID)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(statusCodeForError(err), safety)
			return
		}

		c.JSON(http.StatusOK, safety)
	}
}

// Verify drives one verification pass against the identity provider.
func (h *DomainsHandler) Verify() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainsHandler.Verify")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		domain := c.Param("domain")
		userID := utils.GetUserIdFromContext(ctx)

		outcome, err := h.domainService.InitiateVerification(ctx, domain, userID)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(statusCodeForError(err), outcome)
			return
		}

		c.JSON(http.StatusOK, outcome)
	}
}

// DNSCheck runs the mail-safety precheck without touching stored state.
func (h *DomainsHandler) DNSCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainsHandler.DNSCheck")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		domain := c.Param("domain")

		c.JSON(http.StatusOK, h.dnsService.CheckCanReceiveEmail(ctx, domain))
	}
}

// DNSVerify re-verifies the stored DNS requirements against live DNS.
func (h *DomainsHandler) DNSVerify() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainsHandler.DNSVerify")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		domain := c.Param("domain")
		userID := utils.GetUserIdFromContext(ctx)

		outcome, err := h.domainService.VerifyDomainDNSRecords(ctx, domain, userID)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(statusCodeForError(err), outcome)
			return
		}

		c.JSON(http.StatusOK, outcome)
	}
}

// Delete tears down the sending identity and removes the domain.
func (h *DomainsHandler) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DomainsHandler.Delete")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		domain := c.Param("domain")
		userID := utils.GetUserIdFromContext(ctx)

		if err := h.domainService.DeleteIdentity(ctx, domain, userID); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(statusCodeForError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

func statusCodeForError(err error) int {
	switch {
	case errors.Is(err, er.ErrInvalidDomainFormat):
		return http.StatusBadRequest
	case errors.Is(err, er.ErrDomainNotFound):
		return http.StatusNotFound
	case errors.Is(err, er.ErrProviderNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, er.ErrProviderRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
