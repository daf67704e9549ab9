package handler

import (
	"net/http"
	"pharmacy-store/internal/dto"
	"pharmacy-store/internal/service"

	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	contactService service.ContactService
}

func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

func (h *ContactHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	if err := h.contactService.Submit(ctx, &req); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "thank you for contacting us, we will get back to you soon",
	})
}

func (h *ContactHandler) ListMessages(c echo.Context) error {
	ctx := c.Request().Context()

	messages, err := h.contactService.ListMessages(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, messages)
}

func (h *ContactHandler) UpdateMessageStatus(c echo.Context) error {
	ctx := c.Request().Context()

	messageID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateMessageStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	if err := h.contactService.UpdateMessageStatus(ctx, messageID, req.Status); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "message status updated successfully",
	})
}

func (h *ContactHandler) Team(c echo.Context) error {
	ctx := c.Request().Context()

	members, err := h.contactService.TeamMembers(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, members)
}
