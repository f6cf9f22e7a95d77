package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/tallyframe/tallyframe/lib/document"
)

// maxDocumentSize caps PUT /api/document bodies.
const maxDocumentSize = 8 << 20

// @Summary	Export the current scenes as a document
// @Router		/api/document [get]
// @Tags		document
// @Param		format	query	string	false	"json (default) or yaml"	Enums(json, yaml)
// @Produce	json
// @Success	200	{object}	document.Document
// @Failure	400	{string}	string	"Unsupported format"
func (a *Api) getDocument(w http.ResponseWriter, req *http.Request) {
	format := req.URL.Query().Get("format")
	if format != "" && format != "json" && format != "yaml" {
		http.Error(w, fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest)
		return
	}

	var doc *document.Document
	if err := a.do(req, func() { doc = a.mixer.Theatre.Export() }); err != nil {
		a.unavailable(w, err)
		return
	}

	var b []byte
	var err error
	if format == "yaml" {
		w.Header().Set("Content-Type", "application/yaml")
		b, err = document.MarshalYAML(doc)
	} else {
		w.Header().Set("Content-Type", "application/json")
		b, err = document.Marshal(doc)
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("could not encode document: %s", err), http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(b); err != nil {
		slog.Warn("could not write response", slog.String("module", "api"), slog.String("error", err.Error()))
	}
}

// @Summary	Replace every scene with the contents of a document
// @Router		/api/document [put]
// @Tags		document
// @Param		document	body	document.Document	true	"JSON or YAML document"
// @Accept		json
// @Produce	json
// @Success	200	{object}	PlaybackState
// @Failure	400	{string}	string	"The document could not be decoded or restored"
func (a *Api) putDocument(w http.ResponseWriter, req *http.Request) {
	b, err := io.ReadAll(io.LimitReader(req.Body, maxDocumentSize))
	if err != nil {
		http.Error(w, fmt.Sprintf("could not read body: %s", err), http.StatusBadRequest)
		return
	}
	doc, err := document.Decode(b)
	if err != nil {
		reject(w, "import", http.StatusBadRequest, "could not decode document: %s", err)
		return
	}

	var st PlaybackState
	var restoreErr error
	err = a.do(req, func() {
		restoreErr = a.mixer.Theatre.Restore(doc)
		st = playbackState(a.mixer.Theatre)
	})
	if err != nil {
		a.unavailable(w, err)
		return
	}
	if restoreErr != nil {
		reject(w, "import", http.StatusBadRequest, "%s", restoreErr)
		return
	}
	writeJSON(w, st)
}
