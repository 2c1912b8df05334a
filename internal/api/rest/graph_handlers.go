package rest

import (
	"net/http"

	"brain/internal/graph"

	"github.com/gin-gonic/gin"
)

type CreateEntitiesRequest struct {
	Entities []graph.Entity `json:"entities" binding:"required"`
}

type CreateEntitiesResponse struct {
	Entities []graph.Entity `json:"entities"`
}

type CreateRelationsRequest struct {
	Relations []graph.Relation `json:"relations" binding:"required"`
}

type CreateRelationsResponse struct {
	Relations []graph.Relation `json:"relations"`
}

// readGraph godoc
// @Summary Read the graph
// @Description Return every entity and relation, read under the dataset lease
// @Tags graph
// @Produce json
// @Success 200 {object} graph.Graph
// @Failure 423 {object} ErrorResponse "Dataset lease held elsewhere"
// @Failure 503 {object} ErrorResponse "Lease store unavailable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /graph [get]
func (api *apiDetails) readGraph(c *gin.Context) {
	g, err := api.service.ReadGraph(c.Request.Context())
	if err != nil {
		api.respondError(c, "Failed to read graph", err)
		return
	}

	c.JSON(http.StatusOK, g)
}

// createEntities godoc
// @Summary Create entities
// @Description Create a batch of entities. The batch is stored whole or not at all.
// @Tags graph
// @Accept json
// @Produce json
// @Param request body CreateEntitiesRequest true "Entities to create"
// @Success 201 {object} CreateEntitiesResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "Entity already exists"
// @Failure 423 {object} ErrorResponse "Dataset lease held elsewhere"
// @Failure 503 {object} ErrorResponse "Lease store unavailable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /entities [post]
func (api *apiDetails) createEntities(c *gin.Context) {
	var req CreateEntitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.logger.Debug("Invalid create entities request", "error", err)
		createErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := api.service.CreateEntities(c.Request.Context(), req.Entities)
	if err != nil {
		api.respondError(c, "Failed to create entities", err)
		return
	}

	c.JSON(http.StatusCreated, CreateEntitiesResponse{Entities: created})
}

// createRelations godoc
// @Summary Create relations
// @Description Create a batch of relations between existing entities. The batch is stored whole or not at all.
// @Tags graph
// @Accept json
// @Produce json
// @Param request body CreateRelationsRequest true "Relations to create"
// @Success 201 {object} CreateRelationsResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "Relation already exists"
// @Failure 422 {object} ErrorResponse "Relation references an unknown entity"
// @Failure 423 {object} ErrorResponse "Dataset lease held elsewhere"
// @Failure 503 {object} ErrorResponse "Lease store unavailable"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /relations [post]
func (api *apiDetails) createRelations(c *gin.Context) {
	var req CreateRelationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.logger.Debug("Invalid create relations request", "error", err)
		createErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := api.service.CreateRelations(c.Request.Context(), req.Relations)
	if err != nil {
		api.respondError(c, "Failed to create relations", err)
		return
	}

	c.JSON(http.StatusCreated, CreateRelationsResponse{Relations: created})
}

func (api *apiDetails) respondError(c *gin.Context, msg string, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		api.logger.Error(msg, "error", err, "status", code)
	} else {
		api.logger.Info(msg, "error", err, "status", code)
	}
	createErrorResponse(c, code, msg+": "+err.Error())
}
