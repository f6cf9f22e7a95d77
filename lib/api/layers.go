package api

import (
	"encoding/json"
	"net/http"

	"github.com/tallyframe/tallyframe/lib/document"
	"github.com/tallyframe/tallyframe/lib/layer"
)

type LayerInfo struct {
	ID       string `json:"id" example:"bar-0"`
	Name     string `json:"name,omitempty" example:"150 - 155"`
	Type     string `json:"type" example:"bar"`
	Visible  bool   `json:"visible"`
	Order    int    `json:"order"`
	ParentID string `json:"p_id" example:"bars"`
	Depth    int    `json:"depth"`
}

type LayerPatchReq struct {
	Name    *string        `json:"name,omitempty"`
	Type    *string        `json:"type,omitempty"`
	Visible *bool          `json:"visible,omitempty"`
	Order   *int           `json:"order,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// @Summary	Flattened layer tree of a scene
// @Router		/api/layers [get]
// @Tags		layers
// @Param		scene	query	string	false	"Scene name, the chart when empty"
// @Param		visible	query	bool	false	"Only visible layers"
// @Produce	json
// @Success	200	{array}		LayerInfo
// @Failure	404	{string}	string	"No such scene"
func (a *Api) getLayers(w http.ResponseWriter, req *http.Request) {
	visibleOnly := req.URL.Query().Get("visible") == "true"
	var infos []LayerInfo
	found := false
	err := a.do(req, func() {
		sc := sceneFor(a.mixer.Theatre, req)
		if sc == nil {
			return
		}
		found = true
		infos = []LayerInfo{}
		for _, e := range sc.Layers.GetAllLayers(visibleOnly) {
			infos = append(infos, LayerInfo{
				ID:       e.Layer.ID,
				Name:     e.Layer.Name,
				Type:     e.Layer.Type,
				Visible:  e.Layer.Visible,
				Order:    e.Layer.Order,
				ParentID: e.Layer.ParentID,
				Depth:    e.Depth,
			})
		}
	})
	if err != nil {
		a.unavailable(w, err)
		return
	}
	if !found {
		http.Error(w, "scene does not exist", http.StatusNotFound)
		return
	}
	writeJSON(w, infos)
}

// @Summary	Change display fields of a layer
// @Router		/api/layers/{id} [patch]
// @Tags		layers
// @Param		id		path	string			true	"Layer id"
// @Param		scene	query	string			false	"Scene name, the chart when empty"
// @Param		patch	body	LayerPatchReq	true	"Fields to change"
// @Accept		json
// @Success	200
// @Failure	400	{string}	string	"Could not decode json request"
// @Failure	404	{string}	string	"No such scene or layer"
func (a *Api) patchLayer(w http.ResponseWriter, req *http.Request) {
	var p LayerPatchReq
	if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
		reject(w, "update", http.StatusBadRequest, "could not decode json request: %s", err)
		return
	}
	id := req.PathValue("id")
	patch := layer.Patch{Name: p.Name, Type: p.Type, Visible: p.Visible, Order: p.Order, Data: p.Data}

	ok := false
	err := a.do(req, func() {
		if sc := sceneFor(a.mixer.Theatre, req); sc != nil {
			ok = sc.Layers.UpdateLayer(id, patch)
		}
	})
	if err != nil {
		a.unavailable(w, err)
		return
	}
	if !ok {
		reject(w, "update", http.StatusNotFound, "could not update layer %q", id)
		return
	}
	writeJSON(w, "ok")
}

// @Summary	Remove a layer and its subtree
// @Router		/api/layers/{id} [delete]
// @Tags		layers
// @Param		id		path	string	true	"Layer id"
// @Param		scene	query	string	false	"Scene name, the chart when empty"
// @Success	200
// @Failure	404	{string}	string	"No such scene or layer"
func (a *Api) deleteLayer(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	ok := false
	err := a.do(req, func() {
		if sc := sceneFor(a.mixer.Theatre, req); sc != nil {
			ok = sc.Layers.RemoveLayer(id)
		}
	})
	if err != nil {
		a.unavailable(w, err)
		return
	}
	if !ok {
		reject(w, "remove", http.StatusNotFound, "could not remove layer %q", id)
		return
	}
	writeJSON(w, "ok")
}

// @Summary	Add or replace the animation of a layer
// @Router		/api/animations/{id} [put]
// @Tags		layers
// @Param		id			path	string					true	"Layer id"
// @Param		scene		query	string					false	"Scene name, the chart when empty"
// @Param		animation	body	document.AnimationDoc	true	"Animation; omitted fields take their defaults"
// @Accept		json
// @Success	200
// @Failure	400	{string}	string	"Could not decode json request"
// @Failure	404	{string}	string	"No such scene or layer"
func (a *Api) putAnimation(w http.ResponseWriter, req *http.Request) {
	var d document.AnimationDoc
	if err := json.NewDecoder(req.Body).Decode(&d); err != nil {
		reject(w, "animate", http.StatusBadRequest, "could not decode json request: %s", err)
		return
	}
	id := req.PathValue("id")
	d.LayerID = id
	anim, err := document.ImportAnimation(d)
	if err != nil {
		reject(w, "animate", http.StatusBadRequest, "%s", err)
		return
	}

	ok := false
	err = a.do(req, func() {
		sc := sceneFor(a.mixer.Theatre, req)
		if sc == nil || sc.Layers.FindLayer(id) == nil {
			return
		}
		ok = sc.Timeline.AddAnimation(anim)
	})
	if err != nil {
		a.unavailable(w, err)
		return
	}
	if !ok {
		reject(w, "animate", http.StatusNotFound, "could not animate layer %q", id)
		return
	}
	writeJSON(w, "ok")
}

// @Summary	Remove the animation of a layer
// @Router		/api/animations/{id} [delete]
// @Tags		layers
// @Param		id		path	string	true	"Layer id"
// @Param		scene	query	string	false	"Scene name, the chart when empty"
// @Success	200
// @Failure	404	{string}	string	"No such scene or animation"
func (a *Api) deleteAnimation(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	ok := false
	err := a.do(req, func() {
		if sc := sceneFor(a.mixer.Theatre, req); sc != nil {
			ok = sc.Timeline.RemoveAnimation(id)
		}
	})
	if err != nil {
		a.unavailable(w, err)
		return
	}
	if !ok {
		reject(w, "unanimate", http.StatusNotFound, "layer %q has no animation", id)
		return
	}
	writeJSON(w, "ok")
}
