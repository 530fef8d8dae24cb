package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pathsapp/backend/internal/db"
	"github.com/pathsapp/backend/internal/http/api"
	"github.com/pathsapp/backend/internal/http/api/paths/packets"
	"github.com/pathsapp/backend/internal/model"
)

type PathController struct {
	store db.Store
}

func newPathController(store db.Store) *PathController {
	return &PathController{store: store}
}

// Module mounts the path CRUD endpoints. Every route requires a session.
func Module(store db.Store) api.Module {
	ctl := newPathController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.AuthGET("/path", ctl.listPaths)
		c.AuthPOST("/path", ctl.createPath)
		c.AuthGET("/path/:id", ctl.getPath)
		c.AuthPOST("/path/:id", ctl.updatePath)
		c.AuthPUT("/path/:id", ctl.replacePath)
		c.AuthDELETE("/path/:id", ctl.deletePath)
	})
}

func pathID(ctx *gin.Context) (uuid.UUID, *api.APIError) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, api.Errorf(http.StatusBadRequest, "invalid path id")
	}
	return id, nil
}

// GET /path
func (p *PathController) listPaths(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	var query packets.ListPathsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	paths, err := p.store.ListPaths(query.Skip, query.Limit)
	if err != nil {
		log.Error().Err(err).Msg("path listing failed")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}

	out := make([]packets.PathResponse, 0, len(paths))
	for i := range paths {
		out = append(out, packets.PathView(&paths[i]))
	}
	return out, nil
}

// POST /path
func (p *PathController) createPath(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreatePathRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	path, err := p.store.CreatePath(
		user.ID,
		request.Title,
		request.Description,
		request.StartDate,
		request.LocationStart.ToLocation(),
		request.LocationEnd.ToLocation(),
	)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("could not create path")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}

	return packets.PathView(path), nil
}

// GET /path/:id
func (p *PathController) getPath(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := pathID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	path, err := p.store.GetPathByID(id)
	if err != nil {
		log.Error().Err(err).Str("path_id", id.String()).Msg("path lookup failed")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}
	if path == nil {
		return nil, api.Errorf(http.StatusNotFound, "path not found")
	}

	return packets.PathView(path), nil
}

// POST /path/:id
func (p *PathController) updatePath(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := pathID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdatePathRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	var fields []db.Assignment
	if request.Title != nil {
		fields = append(fields, db.Set("title", *request.Title))
	}
	if request.Description != nil {
		fields = append(fields, db.Set("description", *request.Description))
	}
	if request.StartDate != nil {
		fields = append(fields, db.Set("start_date", *request.StartDate))
	}
	if request.LocationStart != nil {
		fields = append(fields, db.SetLocation("location_start", request.LocationStart.ToLocation()))
	}
	if request.LocationEnd != nil {
		fields = append(fields, db.SetLocation("location_end", request.LocationEnd.ToLocation()))
	}
	if len(fields) == 0 {
		return nil, api.Errorf(http.StatusBadRequest, "no fields to update")
	}

	return p.applyPathUpdate(id, fields)
}

// PUT /path/:id
func (p *PathController) replacePath(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := pathID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.ReplacePathRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	fields := []db.Assignment{
		db.Set("title", request.Title),
		db.Set("description", request.Description),
		db.Set("start_date", request.StartDate),
		db.SetLocation("location_start", request.LocationStart.ToLocation()),
		db.SetLocation("location_end", request.LocationEnd.ToLocation()),
	}

	return p.applyPathUpdate(id, fields)
}

func (p *PathController) applyPathUpdate(id uuid.UUID, fields []db.Assignment) (any, *api.APIError) {
	updated, err := p.store.UpdatePath(id, fields)
	if err != nil {
		log.Error().Err(err).Str("path_id", id.String()).Msg("path update failed")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}
	if !updated {
		return nil, api.Errorf(http.StatusNotFound, "path not found")
	}

	fresh, err := p.store.GetPathByID(id)
	if err != nil || fresh == nil {
		log.Error().Err(err).Str("path_id", id.String()).Msg("could not reload updated path")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}
	return packets.PathView(fresh), nil
}

// DELETE /path/:id
func (p *PathController) deletePath(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, apiErr := pathID(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	path, err := p.store.DeletePath(id)
	if err != nil {
		log.Error().Err(err).Str("path_id", id.String()).Msg("path delete failed")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}
	if path == nil {
		return nil, api.Errorf(http.StatusNotFound, "path not found")
	}

	return packets.PathView(path), nil
}
