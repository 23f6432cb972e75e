package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/campus-assistant/internal/domain"
	"github.com/seu-repo/campus-assistant/internal/ports"
)

type KnowledgeHandler struct {
	store ports.KnowledgeStore
	log   *zap.Logger
}

func NewKnowledgeHandler(store ports.KnowledgeStore, log *zap.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{
		store: store,
		log:   log,
	}
}

func (h *KnowledgeHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.store.Summary(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(summary)
}

func (h *KnowledgeHandler) GetCampusInfo(c *fiber.Ctx) error {
	info, err := h.store.CampusInfo(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(info)
}

func (h *KnowledgeHandler) SetCampusInfo(c *fiber.Ctx) error {
	var info domain.CampusInfo
	if err := c.BodyParser(&info); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}
	if err := h.store.SetCampusInfo(c.Context(), info); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(info)
}

func (h *KnowledgeHandler) UpsertBuilding(c *fiber.Ctx) error {
	var b domain.Building
	if err := c.BodyParser(&b); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}
	slug, err := h.store.UpsertBuilding(c.Context(), b)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"slug": slug})
}

func (h *KnowledgeHandler) GetBuilding(c *fiber.Ctx) error {
	b, err := h.store.GetBuilding(c.Context(), c.Params("slug"))
	if err != nil {
		return h.lookupError(err)
	}
	return c.JSON(b)
}

func (h *KnowledgeHandler) UpsertEvent(c *fiber.Ctx) error {
	var e domain.Event
	if err := c.BodyParser(&e); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}
	slug, err := h.store.UpsertEvent(c.Context(), e)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"slug": slug})
}

func (h *KnowledgeHandler) GetEvent(c *fiber.Ctx) error {
	e, err := h.store.GetEvent(c.Context(), c.Params("slug"))
	if err != nil {
		return h.lookupError(err)
	}
	return c.JSON(e)
}

func (h *KnowledgeHandler) SearchEvents(c *fiber.Ctx) error {
	filter := domain.EventFilter{
		Query: c.Query("query"),
		Type:  c.Query("type"),
	}
	if start, end := c.Query("start"), c.Query("end"); start != "" || end != "" {
		filter.DateRange = &domain.DateRange{Start: start, End: end}
	}

	events, err := h.store.SearchEvents(c.Context(), filter)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"events": events, "count": len(events)})
}

// ClubRequest wraps a club upsert so a missing "active" field defaults to
// true instead of false.
type ClubRequest struct {
	domain.Club
	Active *bool `json:"active"`
}

func (h *KnowledgeHandler) UpsertClub(c *fiber.Ctx) error {
	var req ClubRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}
	club := req.Club
	club.Active = req.Active == nil || *req.Active

	slug, err := h.store.UpsertClub(c.Context(), club)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"slug": slug})
}

func (h *KnowledgeHandler) GetClub(c *fiber.Ctx) error {
	club, err := h.store.GetClub(c.Context(), c.Params("slug"))
	if err != nil {
		return h.lookupError(err)
	}
	return c.JSON(club)
}

func (h *KnowledgeHandler) SearchClubs(c *fiber.Ctx) error {
	filter := domain.ClubFilter{
		Query:      c.Query("query"),
		Category:   c.Query("category"),
		ActiveOnly: c.QueryBool("active_only", true),
	}

	clubs, err := h.store.SearchClubs(c.Context(), filter)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"clubs": clubs, "count": len(clubs)})
}

func (h *KnowledgeHandler) UpsertService(c *fiber.Ctx) error {
	var s domain.CampusService
	if err := c.BodyParser(&s); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}
	slug, err := h.store.UpsertService(c.Context(), s)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"slug": slug})
}

func (h *KnowledgeHandler) GetService(c *fiber.Ctx) error {
	svc, err := h.store.GetService(c.Context(), c.Params("slug"))
	if err != nil {
		return h.lookupError(err)
	}
	return c.JSON(svc)
}

func (h *KnowledgeHandler) SearchServices(c *fiber.Ctx) error {
	filter := domain.ServiceFilter{
		Query:       c.Query("query"),
		Type:        c.Query("type"),
		AvailableTo: c.Query("available_to"),
	}

	services, err := h.store.SearchServices(c.Context(), filter)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"services": services, "count": len(services)})
}

func (h *KnowledgeHandler) Export(c *fiber.Ctx) error {
	doc, err := h.store.Export(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(doc)
}

func (h *KnowledgeHandler) Import(c *fiber.Ctx) error {
	var doc domain.KnowledgeDocument
	if err := c.BodyParser(&doc); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}
	if err := h.store.Import(c.Context(), &doc); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	summary, err := h.store.Summary(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(summary)
}

func (h *KnowledgeHandler) lookupError(err error) error {
	if errors.Is(err, ports.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
