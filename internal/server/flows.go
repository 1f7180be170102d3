package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kode4food/flowcomm/pkg/api"
	"github.com/kode4food/flowcomm/pkg/flow"
)

func (s *Server) listFlows(c *gin.Context) {
	var res *api.FlowsResponse
	s.withRegistry(func(r *flow.Registry) {
		res = digestFlows(r)
	})
	c.JSON(http.StatusOK, res)
}

func (s *Server) activateFlow(c *gin.Context) {
	name := flow.Name(c.Param("name"))

	var req api.ActivateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest,
				fmt.Errorf("%w: %w", ErrInvalidJSON, err))
			return
		}
	}

	opts := []flow.ActivateOption{flow.WithData(req.Data)}
	if req.URL != "" {
		opts = append(opts, flow.WithURL(req.URL))
	}

	var err error
	var depth int
	s.withRegistry(func(r *flow.Registry) {
		err = r.Activate(name, opts...)
		depth = r.Depth(name)
	})
	if err != nil {
		writeError(c, flowErrorStatus(err), err)
		return
	}

	c.JSON(http.StatusCreated, api.ActivatedResponse{
		Flow:  name,
		Depth: depth,
	})
}

func (s *Server) getFlow(c *gin.Context) {
	name := flow.Name(c.Param("name"))
	take, _ := strconv.ParseBool(c.Query("take"))

	var res *flow.Result
	var ok bool
	s.withRegistry(func(r *flow.Registry) {
		if take {
			res, ok = r.Take(name)
		} else {
			res, ok = r.Read(name)
		}
		if ok {
			res = res.Clone()
		}
	})
	if !ok {
		writeError(c, http.StatusNotFound,
			fmt.Errorf("%w: %s", flow.ErrFlowNotFound, name))
		return
	}

	c.JSON(http.StatusOK, res)
}

func (s *Server) deactivateFlow(c *gin.Context) {
	name := flow.Name(c.Param("name"))

	var err error
	s.withRegistry(func(r *flow.Registry) {
		err = r.Deactivate(name)
	})
	if err != nil {
		writeError(c, flowErrorStatus(err), err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) attachData(c *gin.Context) {
	name := flow.Name(c.Param("name"))
	key := c.Param("key")

	var req api.AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest,
			fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	var err error
	var res *flow.Result
	s.withRegistry(func(r *flow.Registry) {
		if err = r.AttachData(name, key, req.Value); err != nil {
			return
		}
		cur, _ := r.Read(name)
		res = cur.Clone()
	})
	if err != nil {
		writeError(c, flowErrorStatus(err), err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (s *Server) resolveFlow(c *gin.Context) {
	name := flow.Name(c.Param("name"))

	var req api.ResolveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest,
				fmt.Errorf("%w: %w", ErrInvalidJSON, err))
			return
		}
	}

	var err error
	var res api.ResolvedResponse
	s.withRegistry(func(r *flow.Registry) {
		if err = r.Resolve(name, req.Output); err != nil {
			return
		}
		if cur, ok := r.Read(name); ok {
			res.Result = cur.Clone()
		}
		res.Location = r.Navigator().CurrentURL()
	})
	if err != nil {
		writeError(c, flowErrorStatus(err), err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (s *Server) handleActive(c *gin.Context) {
	raw := c.QueryArray("name")
	if len(raw) == 0 {
		writeError(c, http.StatusBadRequest,
			errors.New("at least one flow name is required"))
		return
	}

	names := make([]flow.Name, len(raw))
	for i, n := range raw {
		names[i] = flow.Name(n)
	}

	var res api.ActiveResponse
	s.withRegistry(func(r *flow.Registry) {
		res.Name, res.Active = r.IsActive(names...)
	})
	c.JSON(http.StatusOK, res)
}

func digestFlows(r *flow.Registry) *api.FlowsResponse {
	names := r.Names()
	res := &api.FlowsResponse{
		Flows:   make([]*api.FlowDigest, 0, len(names)),
		History: r.History(),
		Count:   len(names),
	}
	for _, name := range names {
		inst, _ := r.Instance(name)
		d := &api.FlowDigest{
			Name:   name,
			Depth:  r.Depth(name),
			Target: inst.Target().String(),
		}
		if cur := inst.Result(); cur != nil {
			d.Result = cur.Clone()
		}
		res.Flows = append(res.Flows, d)
	}
	return res
}

func flowErrorStatus(err error) int {
	switch {
	case errors.Is(err, flow.ErrFlowNotFound):
		return http.StatusNotFound
	case errors.Is(err, flow.ErrNoTarget), errors.Is(err, flow.ErrNoResult):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
