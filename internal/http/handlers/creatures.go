package handlers

import (
	"net/http"
	"strconv"

	"bestiary/internal/domain"
	"bestiary/internal/http/middleware"
	"bestiary/internal/repositories"
	"bestiary/internal/utils"

	"github.com/gin-gonic/gin"
)

// CreatureHandler wires the validated parameter set into the repository and
// maps results and errors onto the HTTP contract.
type CreatureHandler struct {
	Repo repositories.CreatureRepository
}

// GET /api/creatures?page=1&limit=10&search=drag&type=reptile&minDangerLevel=5&sortBy=name&sortOrder=ASC
func (h CreatureHandler) List(c *gin.Context) {
	params, err := domain.NewListParams(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creatures, err := h.Repo.List(c.Request.Context(), params)
	if err != nil {
		h.logFailure(c, "list", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get creatures"})
		return
	}

	if len(creatures) == 0 {
		// Long-standing client contract: an empty result is a 200 with this
		// error-shaped body, not a 404 and not an empty array.
		c.JSON(http.StatusOK, gin.H{"error": "No creatures found"})
		return
	}

	c.JSON(http.StatusOK, creatures)
}

// POST /api/creatures
func (h CreatureHandler) Create(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	creature, err := h.Repo.Create(c.Request.Context(), stringFields(payload))
	if err != nil {
		h.logFailure(c, "create", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create creature"})
		return
	}

	c.JSON(http.StatusCreated, creature)
}

// PUT /api/creatures/:id
func (h CreatureHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid creature id"})
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Repo.Update(c.Request.Context(), id, stringFields(payload)); err != nil {
		if domain.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logFailure(c, "update", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update creature"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Creature updated"})
}

func (h CreatureHandler) logFailure(c *gin.Context, action string, err error) {
	utils.LogEvent(middleware.GetRequestID(c), "creatures", action, err.Error())
}

// stringFields flattens a decoded JSON body into the field/value map the
// repository consumes. Numbers are accepted for danger_level and friends
// since clients send both "5" and 5.
func stringFields(payload map[string]any) map[string]string {
	body := make(map[string]string, len(payload))
	for key, value := range payload {
		switch v := value.(type) {
		case string:
			body[key] = v
		case float64:
			body[key] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return body
}
