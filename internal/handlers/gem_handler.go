package handlers

import (
	"errors"
	"log"
	"strconv"

	"gemstore/internal/models"
	"gemstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// GemHandler handles HTTP requests for the gem inventory.
type GemHandler struct {
	service      *services.GemService
	authRequired fiber.Handler
	validate     *validator.Validate
}

// NewGemHandler creates a new GemHandler. authRequired guards the
// mutation and seller routes; reads are public.
func NewGemHandler(service *services.GemService, authRequired fiber.Handler) *GemHandler {
	return &GemHandler{
		service:      service,
		authRequired: authRequired,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the gem routes with the Fiber app. The seller
// route is registered first so parameterized routes never shadow it.
func (h *GemHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/gems/seller/me", h.authRequired, h.HandleGetSellerGems)
	router.Get("/gems", h.HandleListGems)
	router.Get("/gem/:id", h.HandleGetGemByID)
	router.Post("/gems", h.authRequired, h.HandleCreateGem)
	router.Put("/gems/:id", h.authRequired, h.HandleUpdateGem)
	router.Patch("/gems/:id", h.authRequired, h.HandlePatchGem)
	router.Delete("/gems/:id", h.authRequired, h.HandleDeleteGem)
}

// HandleListGems retrieves gems filtered by the optional lte, gte and
// type query parameters.
func (h *GemHandler) HandleListGems(c *fiber.Ctx) error {
	var filter models.GemFilter

	if raw := c.Query("gte"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Query parameter 'gte' must be a number",
			})
		}
		filter.MinPrice = &min
	}
	if raw := c.Query("lte"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Query parameter 'lte' must be a number",
			})
		}
		filter.MaxPrice = &max
	}
	for _, raw := range c.Context().QueryArgs().PeekMulti("type") {
		gemType := models.GemType(raw)
		if !validGemType(gemType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Unknown gem type: " + string(raw),
			})
		}
		filter.Types = append(filter.Types, gemType)
	}

	gems, err := h.service.ListGems(filter)
	if err != nil {
		log.Printf("Error listing gems: %v", err)
		return internalError(c, "Could not retrieve gems")
	}
	return c.JSON(fiber.Map{"gems": gems})
}

// HandleGetGemByID retrieves a single gem by its ID.
func (h *GemHandler) HandleGetGemByID(c *fiber.Ctx) error {
	id := c.Params("id")
	gem, err := h.service.GetGemByID(id)
	if err != nil {
		if errors.Is(err, models.ErrGemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Gem not found",
			})
		}
		log.Printf("Error getting gem by ID %s: %v", id, err)
		return internalError(c, "Could not retrieve gem")
	}
	return c.JSON(gem)
}

// CreateGemRequest represents the request body for creating a gem.
// Any price in the gem body is ignored; the price is always computed.
type CreateGemRequest struct {
	Gem           models.Gem           `json:"gem"`
	GemProperties models.GemProperties `json:"gem_properties"`
}

// HandleCreateGem creates a new gem with its properties for the acting
// seller.
func (h *GemHandler) HandleCreateGem(c *fiber.Ctx) error {
	actor := actingUser(c)

	var req CreateGemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create gem request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.GemProperties.Size == 0 {
		req.GemProperties.Size = 1
	}
	if err := h.validate.Struct(req.Gem); err != nil {
		return validationFailed(c, err)
	}
	if err := h.validate.Struct(req.GemProperties); err != nil {
		return validationFailed(c, err)
	}

	gem := req.Gem
	props := req.GemProperties
	if err := h.service.CreateGem(actor, &gem, &props); err != nil {
		return h.mutationError(c, "create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(gem)
}

// HandleUpdateGem fully replaces a gem's mutable fields.
func (h *GemHandler) HandleUpdateGem(c *fiber.Ctx) error {
	actor := actingUser(c)
	id := c.Params("id")

	var update models.GemUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(update); err != nil {
		return validationFailed(c, err)
	}

	gem, err := h.service.UpdateGem(id, update, actor)
	if err != nil {
		return h.mutationError(c, "update", err)
	}
	return c.JSON(gem)
}

// HandlePatchGem replaces only the fields present in the request body.
func (h *GemHandler) HandlePatchGem(c *fiber.Ctx) error {
	actor := actingUser(c)
	id := c.Params("id")

	var patch models.GemPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(patch); err != nil {
		return validationFailed(c, err)
	}

	gem, err := h.service.PatchGem(id, patch, actor)
	if err != nil {
		return h.mutationError(c, "patch", err)
	}
	return c.JSON(gem)
}

// HandleDeleteGem hard-deletes a gem and responds 204 on success.
func (h *GemHandler) HandleDeleteGem(c *fiber.Ctx) error {
	actor := actingUser(c)
	id := c.Params("id")

	if err := h.service.DeleteGem(id, actor); err != nil {
		return h.mutationError(c, "delete", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetSellerGems lists the acting seller's own inventory as paired
// gem/properties objects.
func (h *GemHandler) HandleGetSellerGems(c *fiber.Ctx) error {
	actor := actingUser(c)

	gems, err := h.service.ListGemsBySeller(actor)
	if err != nil {
		return h.mutationError(c, "list", err)
	}
	return c.JSON(gems)
}

// mutationError maps expected business outcomes to HTTP statuses and
// everything else to a generic 500.
func (h *GemHandler) mutationError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, models.ErrGemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Gem not found",
		})
	case errors.Is(err, models.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You are not allowed to " + op + " this gem",
		})
	default:
		log.Printf("Error during gem %s: %v", op, err)
		return internalError(c, "Could not "+op+" gem")
	}
}

func validGemType(t models.GemType) bool {
	for _, v := range models.GemTypeValues {
		if t == v {
			return true
		}
	}
	return false
}

func actingUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

func internalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = "Field '" + e.Field() + "' failed on the '" + e.Tag() + "' tag"
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
